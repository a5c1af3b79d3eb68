package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields returns the names of all fields of the filter that are
// set as query parameters in the URL. The query parameter name of a field
// is read from its "form" tag.
//
// This can be used to distinguish between zero values and fields
// that are not set at all.
func GetURLFields(url *url.URL, filter any) []string {
	var setFields []string

	query := url.Query()
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		param := field.Tag.Get("form")

		if param != "" && query.Has(param) {
			setFields = append(setFields, field.Name)
		}
	}

	return setFields
}
