package reflectutil

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
)

var matchFirstCap = regexp.MustCompile("(.)([A-Z]+[a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z]+)")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// GetColumnNames lists the column names of a struct pointer, sorted. A `db`
// tag overrides the snake case name and `db:"-"` skips the field.
func GetColumnNames(i any) []string {
	result := []string{}
	typ := reflect.TypeOf(i).Elem()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := ToSnakeCase(field.Name)
		if tag, ok := field.Tag.Lookup("db"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}

		result = append(result, name)
	}
	sort.Strings(result)

	return result
}
