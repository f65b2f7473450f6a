package shortcode

import "errors"

// ErrMalformedEmbed is returned when text handed to ParseEmbed does not follow
// the [[ embed url=<token> ]] grammar.
var ErrMalformedEmbed = errors.New("shortcode: malformed embed")
