package query

import (
	"strings"
	"testing"
)

func TestValidate_DeniedKeywords(t *testing.T) {
	v := NewValidator()
	cases := []string{
		"DROP TABLE userprofiles.public.contact_search",
		"drop table x",
		"SELECT 1; dElEtE FROM x",
		"TRUNCATE x",
		"SELECT 1; alter table x add y int",
		"CREATE TABLE y (z int)",
		"GRANT ALL ON x TO y",
		"revoke select on x from y",
	}
	for _, text := range cases {
		verdict := v.Validate(text)
		if verdict.Accepted {
			t.Errorf("expected rejection for %q", text)
		}
	}
}

func TestValidate_RejectionNamesKeyword(t *testing.T) {
	v := NewValidator()
	verdict := v.Validate("SELECT 1; DROP TABLE x")
	if verdict.Accepted {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(verdict.Reason, "DROP") {
		t.Errorf("expected reason to name the keyword, got %q", verdict.Reason)
	}
}

func TestValidate_MissingSelect(t *testing.T) {
	v := NewValidator()
	verdict := v.Validate("SHOW TABLES")
	if verdict.Accepted {
		t.Error("expected rejection for SELECT-less query")
	}
	if verdict.Reason != "query must contain a SELECT statement" {
		t.Errorf("unexpected reason: %q", verdict.Reason)
	}
}

func TestValidate_BenignSelect(t *testing.T) {
	v := NewValidator()
	verdict := v.Validate("SELECT FIRST_NAME, LAST_NAME FROM userprofiles.public.contact_search c WHERE c.JOB_IS_CURRENT = TRUE")
	if !verdict.Accepted {
		t.Errorf("expected acceptance, got %q", verdict.Reason)
	}
}

func TestValidate_KeywordInsideIdentifierNotMatched(t *testing.T) {
	v := NewValidator()
	// DROPOUT_RATE contains DROP but not on a word boundary
	verdict := v.Validate("SELECT DROPOUT_RATE FROM metrics")
	if !verdict.Accepted {
		t.Errorf("expected acceptance for embedded substring, got %q", verdict.Reason)
	}
}
