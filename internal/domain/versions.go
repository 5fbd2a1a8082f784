package domain

import (
	"fmt"
	"sort"
)

// WeatherOptions are the weather choices offered by the entry form
var WeatherOptions = []string{
	"晴れ", "曇り", "雨", "雪", "雷雨", "霧", "強風",
	"晴れのち曇り", "晴れのち雨", "晴れのち雪",
	"曇りのち晴れ", "曇りのち雨", "曇りのち雪",
	"雨のち晴れ", "雨のち曇り", "雨のち雪",
	"雪のち晴れ", "雪のち曇り", "雪のち雨",
}

// SchemaV1 is the original six-column diary
var SchemaV1 = Schema{
	Version: 1,
	Fields: []Field{
		{Name: "日付", Type: FieldDate},
		{Name: "満足度", Type: FieldBoundedInt, Min: 1, Max: 5, Default: "3"},
		{Name: "天気", Type: FieldEnum, Options: WeatherOptions},
		{Name: "外出時間", Type: FieldMinutes, Default: "0"},
		{Name: "入眠時間", Type: FieldTime},
		{Name: "起床時間", Type: FieldTime},
	},
}

// SchemaV2 extends v1 with body and activity columns.
// Sheets written with v1 stay readable: the extra columns coerce to Missing.
var SchemaV2 = Schema{
	Version: 2,
	Fields: append(append([]Field(nil), SchemaV1.Fields...),
		Field{Name: "歩数", Type: FieldInt},
		Field{Name: "体重", Type: FieldFloat},
		Field{Name: "運動", Type: FieldFlag, Default: "0"},
		Field{Name: "飲酒", Type: FieldFlag, Default: "0"},
		Field{Name: "メモ", Type: FieldText},
	),
}

var builtinSchemas = map[int]Schema{
	SchemaV1.Version: SchemaV1,
	SchemaV2.Version: SchemaV2,
}

// LatestSchema returns the newest built-in schema
func LatestSchema() Schema {
	return SchemaV2
}

// LookupSchema returns a built-in schema by version
func LookupSchema(version int) (Schema, error) {
	s, ok := builtinSchemas[version]
	if !ok {
		return Schema{}, fmt.Errorf("unknown schema version %d (known: %v)", version, SchemaVersions())
	}
	return s, nil
}

// SchemaVersions lists the built-in schema versions in ascending order
func SchemaVersions() []int {
	versions := make([]int, 0, len(builtinSchemas))
	for v := range builtinSchemas {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions
}
