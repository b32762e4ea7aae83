package types

import "testing"

var testMapping = FieldMapping{
	{ApiField: "code", Column: "code"},
	{ApiField: "department", Column: "department"},
	{ApiField: "effectiveStartDate", Column: ColumnEffectiveStartDate},
}

func TestFieldMapping_Transform(t *testing.T) {
	record := PositionRecord{
		"code":       "X1",
		"department": nil,
		"unmapped":   "dropped",
	}

	transformed := testMapping.Transform(record)
	if len(transformed) != len(testMapping) {
		t.Fatalf("transformed key count error, expect: %d, actual: %d",
			len(testMapping), len(transformed))
	}

	for _, column := range testMapping.Columns() {
		if _, ok := transformed[column]; !ok {
			t.Fatalf("transformed record missing column %s", column)
		}
	}

	if transformed["code"] != "X1" {
		t.Fatalf("copy value failed, expect: X1, actual: %v", transformed["code"])
	}

	// 显式 null 原样保留，缺失字段补 nil，两者都不能丢 key
	if value, ok := transformed["department"]; !ok || value != nil {
		t.Fatal("explicit null should be kept")
	}
	if value, ok := transformed[ColumnEffectiveStartDate]; !ok || value != nil {
		t.Fatal("missing api field should be filled with nil")
	}

	if _, ok := transformed["unmapped"]; ok {
		t.Fatal("unmapped api field should be dropped")
	}
}

func TestFieldMapping_Order(t *testing.T) {
	fields, columns := testMapping.SelectFields(), testMapping.Columns()
	for i, pair := range testMapping {
		if fields[i] != pair.ApiField {
			t.Fatalf("select fields order error, expect: %s, actual: %s",
				pair.ApiField, fields[i])
		}
		if columns[i] != pair.Column {
			t.Fatalf("columns order error, expect: %s, actual: %s",
				pair.Column, columns[i])
		}
	}
}

func TestPositionRecord_StringField(t *testing.T) {
	record := PositionRecord{
		"department": "ENG-Core",
		"targetFTE":  float64(2),
		"vacant":     nil,
	}

	if got := record.StringField("department"); got != "ENG-Core" {
		t.Fatalf("string field error, expect: ENG-Core, actual: %s", got)
	}
	if got := record.StringField("targetFTE"); got != "2" {
		t.Fatalf("number field error, expect: 2, actual: %s", got)
	}
	if got := record.StringField("vacant"); got != "" {
		t.Fatalf("null field should be empty, actual: %s", got)
	}
	if got := record.StringField("missing"); got != "" {
		t.Fatalf("missing field should be empty, actual: %s", got)
	}
}
