package config

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

const redacted = "***************"

// LogFields renders a config struct as logrus fields keyed by flag name.  If a
// struct field has the 'neverLog' tag, its value will be replaced by
// asterisks, or completely omitted if the tag value is 'omit'.
func LogFields(conf interface{}) log.Fields {
	fields := log.Fields{}
	addFields(fields, reflect.Indirect(reflect.ValueOf(conf)))
	return fields
}

func addFields(fields log.Fields, confValue reflect.Value) {
	if confValue.Kind() != reflect.Struct {
		return
	}
	confStruct := confValue.Type()

	for i := 0; i < confStruct.NumField(); i++ {
		field := confStruct.Field(i)

		// PkgPath is empty only for exported fields, so if it's non-empty the
		// field is private
		if field.PkgPath != "" {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			// Flatten nested structs, flag names are unique anyway
			addFields(fields, confValue.Field(i))
			continue
		}

		name := field.Tag.Get("flag")
		if name == "" {
			continue
		}

		val := confValue.Field(i).Interface()
		if neverLogVal, ok := field.Tag.Lookup("neverLog"); ok {
			if neverLogVal == "omit" {
				continue
			}
			if !confValue.Field(i).IsZero() {
				val = redacted
			}
		}
		fields[name] = val
	}
}
