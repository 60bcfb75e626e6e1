package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentStatus represents the lifecycle status of a quote or statement
type DocumentStatus int

const (
	DocumentStatusDraft     DocumentStatus = 0
	DocumentStatusPresented DocumentStatus = 1
	DocumentStatusAccepted  DocumentStatus = 2
	DocumentStatusRejected  DocumentStatus = 3
	DocumentStatusPaid      DocumentStatus = 4
)

var documentStatusNames = [...]string{"Draft", "Presented", "Accepted", "Rejected", "Paid"}

func (s DocumentStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("DocumentStatus(%d)", int(s))
	}
	return documentStatusNames[s]
}

// IsValid reports whether s is one of the known statuses
func (s DocumentStatus) IsValid() bool {
	return s >= DocumentStatusDraft && int(s) < len(documentStatusNames)
}

// ParseDocumentStatus resolves a status name, case-insensitively
func ParseDocumentStatus(name string) (DocumentStatus, bool) {
	for i, n := range documentStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return DocumentStatus(i), true
		}
	}
	return DocumentStatusDraft, false
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !DocumentStatus(i).IsValid() {
			return fmt.Errorf("unknown document status %d", i)
		}
		*s = DocumentStatus(i)
		return nil
	}
	parsed, ok := ParseDocumentStatus(str)
	if !ok {
		return fmt.Errorf("unknown document status %q", str)
	}
	*s = parsed
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DocumentStatusDraft
		return nil
	}
	var status DocumentStatus
	switch v := value.(type) {
	case int64:
		status = DocumentStatus(v)
	case int:
		status = DocumentStatus(v)
	default:
		return fmt.Errorf("enum: cannot scan %T into DocumentStatus", value)
	}
	if !status.IsValid() {
		return fmt.Errorf("unknown document status %d", int(status))
	}
	*s = status
	return nil
}
