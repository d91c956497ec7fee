package validate

import "strings"

// Masks format raw keystroke input into the display form of each field. All of
// them are pure: same input, same output, no UI wiring.

// MaskCPF formats digits as 000.000.000-00.
func MaskCPF(s string) string {
	d := capDigits(s, 11)
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// MaskPhone formats digits as (00) 00000-0000. The area-code parentheses only
// appear once a third digit is typed.
func MaskPhone(s string) string {
	d := capDigits(s, 11)
	if len(d) < 3 {
		return d
	}
	if len(d) <= 7 {
		return "(" + d[:2] + ") " + d[2:]
	}
	return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
}

// MaskZipCode formats digits as 00000-000.
func MaskZipCode(s string) string {
	d := capDigits(s, 8)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// MaskCardNumber groups the first sixteen digits in blocks of four; longer
// PANs extend the last block.
func MaskCardNumber(s string) string {
	d := capDigits(s, 19)
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		if i > 0 && i%4 == 0 && i < 16 {
			b.WriteByte(' ')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// MaskCardExpiry formats digits as MM/YY.
func MaskCardExpiry(s string) string {
	d := capDigits(s, 4)
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// MaskCVV keeps digits only.
func MaskCVV(s string) string {
	return capDigits(s, 4)
}

func capDigits(s string, max int) string {
	d := Digits(s)
	if len(d) > max {
		d = d[:max]
	}
	return d
}
