package decoder

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

// URLDecoder decodes query strings into structs tagged with `schema`.
type URLDecoder struct {
	dec *schema.Decoder
}

func New() *URLDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(false)
	dec.ZeroEmpty(true)
	return &URLDecoder{dec: dec}
}

func (d *URLDecoder) IgnoreUnknownKeys(i bool) {
	d.dec.IgnoreUnknownKeys(i)
}

// Decode fills dst from src. Conversion and unknown-key errors are
// flattened into a field -> message map suitable for a 422 response.
func (d *URLDecoder) Decode(dst any, src url.Values) (map[string]string, error) {
	err := d.dec.Decode(dst, src)
	if err == nil {
		return nil, nil
	}
	var multiErr schema.MultiError
	if !errors.As(err, &multiErr) {
		return nil, err
	}
	fieldErrs := make(map[string]string, len(multiErr))
	for key, e := range multiErr {
		var convErr schema.ConversionError
		var unknownErr schema.UnknownKeyError
		switch {
		case errors.As(e, &convErr):
			fieldErrs[key] = fmt.Sprintf("Invalid value for %s", key)
		case errors.As(e, &unknownErr):
			fieldErrs[key] = "Unknown query parameter"
		default:
			fieldErrs[key] = e.Error()
		}
	}
	return fieldErrs, nil
}
