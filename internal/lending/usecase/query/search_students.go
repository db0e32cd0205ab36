package query

import (
	"strings"

	"github.com/aidosbek/labtrack/internal/lending/domain"
)

// SearchStudentsHandler finds students for the returns view.
type SearchStudentsHandler struct {
	store domain.Store
}

// NewSearchStudentsHandler creates a new search students handler
func NewSearchStudentsHandler(store domain.Store) *SearchStudentsHandler {
	return &SearchStudentsHandler{store: store}
}

// Handle matches the term case-insensitively against the student code
// or name. An empty term returns nothing: the returns view only shows
// results once the operator starts typing.
func (h *SearchStudentsHandler) Handle(query string) ([]domain.Student, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return []domain.Student{}, nil
	}

	students, err := h.store.ListStudents()
	if err != nil {
		return nil, err
	}

	out := []domain.Student{}
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.StudentID), term) ||
			strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out, nil
}
