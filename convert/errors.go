package convert

import "errors"

// ErrBadInput is returned for any client-side input problem: unreadable
// uploads, a spreadsheet without columns, or a label/page count
// mismatch. The wrapped text carries the specifics for the response
// message.
var ErrBadInput = errors.New("convert: bad input")

// ErrNoCredit is returned when the user's balance is zero or less
// before the conversion is even attempted.
var ErrNoCredit = errors.New("convert: no tokens left")

// ErrInsufficientCredit is returned when the balance is positive but
// smaller than the page count of the uploaded document.
var ErrInsufficientCredit = errors.New("convert: not enough tokens")

// RechargeContact is where users top up their balance; it is included
// in the human-facing credit failure messages.
const RechargeContact = "zistal@gmail.com"
