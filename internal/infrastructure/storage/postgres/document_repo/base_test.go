package document_repo

import (
	"testing"
)

func testRepo() *BaseDocumentRepo[any] {
	return NewBaseDocumentRepo[any](nil, "test_docs",
		[]string{"id", "number", "date", "payment_status", "grand_total"},
		"customer_id",
		func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to date desc", orderBy: "", want: "date DESC"},
		{name: "plain column ascends", orderBy: "number", want: "number ASC"},
		{name: "minus prefix descends", orderBy: "-grand_total", want: "grand_total DESC"},
		{name: "plus prefix ascends", orderBy: "+date", want: "date ASC"},
		{name: "unknown column rejected", orderBy: "payload", wantErr: true},
		{name: "injection rejected", orderBy: "date; DROP TABLE test_docs", wantErr: true},
		{name: "bare minus rejected", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseOrderBy(%q) expected error, got %q", tt.orderBy, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}

func TestHasColumn(t *testing.T) {
	repo := testRepo()

	if !repo.hasColumn("payment_status") {
		t.Error("expected payment_status to be present")
	}
	if repo.hasColumn("supplier_bill_number") {
		t.Error("did not expect supplier_bill_number")
	}
}
