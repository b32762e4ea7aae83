package generators

import (
	"github.com/extras28/pull-job-position-from-sf4c/pkg/types"
	"strings"
	"testing"
)

func TestOracleBuilder_BuildUpsert(t *testing.T) {
	builder := NewOracleBuilder(testGeneratorMapping)
	record := types.PositionRecord{
		"code":               "X1",
		"positionTitle":      "O'Brien's post",
		"effectiveStartDate": "/Date(1700000000000)/",
	}

	expect := strings.Join([]string{
		"MERGE INTO job_sf_position t",
		"USING (SELECT 'X1' AS code FROM dual) s",
		"ON (t.code = s.code)",
		"WHEN NOT MATCHED THEN INSERT (code, position_title, effective_start_date)",
		"VALUES ('X1', 'O''Brien''s post', TO_TIMESTAMP('2023-11-14 22:13:20.000', 'YYYY-MM-DD HH24:MI:SS.FF3'));",
	}, "\n")

	if actual := builder.BuildUpsert(record); actual != expect {
		t.Fatalf("merge statement wrong, expect:\n%s\nactual:\n%s", expect, actual)
	}
}

func TestOracleBuilder_MissingFieldsBecomeNull(t *testing.T) {
	builder := NewOracleBuilder(testGeneratorMapping)
	statement := builder.BuildUpsert(types.PositionRecord{"code": "X9"})

	if !strings.Contains(statement, "VALUES ('X9', NULL, NULL);") {
		t.Fatalf("missing fields must render NULL, actual:\n%s", statement)
	}
}

func TestOracleBuilder_MissingCode(t *testing.T) {
	builder := NewOracleBuilder(testGeneratorMapping)
	statement := builder.BuildUpsert(types.PositionRecord{"positionTitle": "Orphan"})

	if !strings.Contains(statement, "USING (SELECT NULL AS code FROM dual) s") {
		t.Fatalf("missing code must render NULL key, actual:\n%s", statement)
	}
}
