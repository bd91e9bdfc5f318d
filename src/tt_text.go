package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Translate between text and touch tone representation.
 *
 * Description: Letters can be represented by different touch tone
 *		keypad sequences.
 *
 * References:	This follows the APRStt (TM) documents for the two
 *		keypad encodings.
 *
 *		http://www.aprs.org/aprstt.html
 *
 *---------------------------------------------------------------*/

import (
	"strings"
	"unicode"
)

/*
 * There are two different encodings called:
 *
 *   * Two-key
 *
 *		Digits are represented by a single key press.
 *		Letters (or space) are represented by the corresponding
 *		key followed by A, B, C, or D depending on the position
 *		of the letter.
 *
 *   * Multi-press
 *
 *		Letters are represented by one or more key presses
 *		depending on their position.
 *		e.g. on 5/JKL key, J = 1 press, K = 2, etc.
 *		The digit is the number of letters plus 1.
 *		In this case, press 5 key four times to get digit 5.
 *		When two characters in a row use the same key,
 *		use the "A" key as a separator.
 *
 * Examples:
 *
 *	Character	Multipress	Two Key
 *	---------	----------	-------
 *	0		00		0
 *	1		1		1
 *	2		2222		2
 *	W		9		9A
 *	Z		9999		9D
 *	space		0		0A
 */

// Everything is based on this table.
var translate = [10][4]rune{
	/*	 A	 B	 C	 D  */
	/* 0 */ {' ', 0, 0, 0},
	/* 1 */ {0, 0, 0, 0},
	/* 2 */ {'A', 'B', 'C', 0},
	/* 3 */ {'D', 'E', 'F', 0},
	/* 4 */ {'G', 'H', 'I', 0},
	/* 5 */ {'J', 'K', 'L', 0},
	/* 6 */ {'M', 'N', 'O', 0},
	/* 7 */ {'P', 'Q', 'R', 'S'},
	/* 8 */ {'T', 'U', 'V', 0},
	/* 9 */ {'W', 'X', 'Y', 'Z'}}

// Encoding identifies a keypad text encoding.
type Encoding int

const (
	EncodingEither Encoding = iota
	EncodingMultiPress
	EncodingTwoKey
)

func (e Encoding) String() string {
	switch e {
	case EncodingMultiPress:
		return "multi-press"
	case EncodingTwoKey:
		return "two-key"
	default:
		return "either"
	}
}

// lettersOn is the number of characters other than the digit on a button.
func lettersOn(digit rune) int {
	var n = 0
	for _, ch := range translate[digit-'0'] {
		if ch != 0 {
			n++
		}
	}
	return n
}

// findLetter returns the button and position of c in the translation table.
func findLetter(c rune) (rune, int, bool) {
	for row := range translate {
		for col, ch := range translate[row] {
			if ch != 0 && ch == c {
				return rune('0' + row), col, true
			}
		}
	}
	return 0, 0, false
}

// normalizeLetter upper cases letters.  Anything else that isn't a space
// becomes a space and counts as an error.
func normalizeLetter(c rune, quiet bool, who string) (rune, int) {
	if unicode.IsUpper(c) || c == ' ' {
		return c, 0
	}
	if unicode.IsLower(c) {
		return unicode.ToUpper(c), 0
	}
	if !quiet {
		logger.Error(who+": Only letters, digits, and space allowed.", "char", string(c))
	}
	return ' ', 1
}

/*------------------------------------------------------------------
 *
 * Name:        TextToMultiPress
 *
 * Purpose:     Convert text to the multi-press representation.
 *
 * Inputs:      text	- Should contain only digits, letters, or space.
 *			  All other punctuation is treated as space.
 *
 *		quiet	- True to suppress error messages.
 *
 * Returns:     Sequence of buttons to press and the number of errors.
 *
 *----------------------------------------------------------------*/

func TextToMultiPress(text string, quiet bool) (string, int) {

	var buttons strings.Builder
	var errs = 0
	var prev rune

	var press = func(button rune, times int) {
		// Stick in 'A' if previous character used same button.
		if prev == button {
			buttons.WriteByte('A')
		}
		for ; times > 0; times-- {
			buttons.WriteRune(button)
		}
		prev = button
	}

	for _, c := range text {
		if c >= '0' && c <= '9' {
			// Press the number of letters on this button plus one more.
			press(c, lettersOn(c)+1)
			continue
		}

		var e int
		c, e = normalizeLetter(c, quiet, "Text to multi-press")
		errs += e

		var button, col, found = findLetter(c)
		if !found {
			errs++
			if !quiet {
				logger.Error("Text to multi-press: no button for character.", "char", string(c))
			}
			continue
		}
		press(button, col+1)
	}

	return buttons.String(), errs
}

/*------------------------------------------------------------------
 *
 * Name:        TextToTwoKey
 *
 * Purpose:     Convert text to the two-key representation.
 *
 * Returns:     Sequence of buttons to press and the number of errors.
 *
 *----------------------------------------------------------------*/

func TextToTwoKey(text string, quiet bool) (string, int) {

	var buttons strings.Builder
	var errs = 0

	for _, c := range text {
		if c >= '0' && c <= '9' {
			// Digit is single key press.
			buttons.WriteRune(c)
			continue
		}

		var e int
		c, e = normalizeLetter(c, quiet, "Text to two-key")
		errs += e

		var button, col, found = findLetter(c)
		if !found {
			errs++
			if !quiet {
				logger.Error("Text to two-key: no button for character.", "char", string(c))
			}
			continue
		}
		buttons.WriteRune(button)
		buttons.WriteRune(rune('A' + col))
	}

	return buttons.String(), errs
}

/*------------------------------------------------------------------
 *
 * Name:        MultiPressToText
 *
 * Purpose:     Convert the multi-press representation to text.
 *
 * Inputs:      buttons	- Should contain only 0123456789A.
 *
 *		quiet	- True to suppress error messages.
 *
 * Returns:     Letters, digits, space and the number of errors.
 *
 *----------------------------------------------------------------*/

func MultiPressToText(buttons string, quiet bool) (string, int) {

	var text strings.Builder
	var errs = 0

	for i := 0; i < len(buttons); i++ {
		var c = rune(buttons[i])

		switch {
		case c >= '0' && c <= '9':

			// Max that can occur in a row.
			var maxspan = lettersOn(c) + 1

			// Count number of consecutive same digits.
			var n = 1
			for i+1 < len(buttons) && rune(buttons[i+1]) == c {
				n++
				i++
			}

			if n < maxspan {
				text.WriteRune(translate[c-'0'][n-1])
			} else if n == maxspan {
				text.WriteRune(c)
			} else {
				errs++
				if !quiet {
					logger.Errorf("Multi-press to text: Maximum of %d \"%c\" can occur in a row.", maxspan, c)
				}
				// Treat like the maximum length.
				text.WriteRune(c)
			}

		case c == 'A' || c == 'a':

			// Separator should occur only if digit before and after are the same.
			if i == 0 || i == len(buttons)-1 || buttons[i-1] != buttons[i+1] {
				errs++
				if !quiet {
					logger.Error("Multi-press to text: \"A\" can occur only between two same digits.")
				}
			}

		default:
			errs++
			if !quiet {
				logger.Errorf("Multi-press to text: \"%c\" not allowed.", c)
			}
		}
	}

	return text.String(), errs
}

/*------------------------------------------------------------------
 *
 * Name:        TwoKeyToText
 *
 * Purpose:     Convert the two key representation to text.
 *
 * Inputs:      buttons	- Should contain only 0123456789ABCD.
 *
 * Returns:     Letters, digits, space and the number of errors.
 *
 *----------------------------------------------------------------*/

func TwoKeyToText(buttons string, quiet bool) (string, int) {

	var text strings.Builder
	var errs = 0

	for i := 0; i < len(buttons); i++ {
		var c = rune(buttons[i])

		switch {
		case c >= '0' && c <= '9':

			// Letter (or space) if followed by ABCD.
			var col = -1
			if i+1 < len(buttons) {
				var b = buttons[i+1]
				if b >= 'A' && b <= 'D' {
					col = int(b - 'A')
				} else if b >= 'a' && b <= 'd' {
					col = int(b - 'a')
				}
			}

			if col < 0 {
				text.WriteRune(c)
				continue
			}

			if ch := translate[c-'0'][col]; ch != 0 {
				text.WriteRune(ch)
			} else {
				errs++
				if !quiet {
					logger.Errorf("Two key to text: Invalid combination \"%c%c\".", c, rune('A'+col))
				}
			}
			i++ // Skip the next character since we consumed it

		case (c >= 'A' && c <= 'D') || (c >= 'a' && c <= 'd'):
			errs++
			if !quiet {
				logger.Error("Two-key to text: A, B, C, or D in unexpected location.")
			}

		default:
			errs++
			if !quiet {
				logger.Errorf("Two-key to text: Invalid character \"%c\".", c)
			}
		}
	}

	return text.String(), errs
}

/*------------------------------------------------------------------
 *
 * Name:        GuessEncoding
 *
 * Purpose:     Try to guess which encoding is being used.
 *
 * Inputs:      buttons	- Should contain only 0123456789ABCD.
 *
 * Returns:     EncodingMultiPress, EncodingTwoKey or EncodingEither.
 *
 *----------------------------------------------------------------*/

func GuessEncoding(buttons string) Encoding {

	// If it contains B, C, or D, it can't be multipress.
	if strings.ContainsAny(buttons, "BCDbcd") {
		return EncodingTwoKey
	}

	// Try parsing quietly and see if one gets errors and the other doesn't.
	var _, errMP = MultiPressToText(buttons, true)
	var _, errTK = TwoKeyToText(buttons, true)

	if errMP == 0 && errTK > 0 {
		return EncodingMultiPress
	} else if errTK == 0 && errMP > 0 {
		return EncodingTwoKey
	}

	return EncodingEither
}

// Checksum is the check digit sent after a button sequence: the sum of
// the button values, with A-D counting as 10-13, plus 10 for the leading
// 'A', mod 10.
func Checksum(buttons string) int {
	var sum = 10

	for _, b := range buttons {
		switch {
		case unicode.IsDigit(b):
			sum += int(b - '0')
		case b >= 'A' && b <= 'D':
			sum += int(b-'A') + 10
		case b >= 'a' && b <= 'd':
			sum += int(b-'a') + 10
		}
	}

	return sum % 10
}
