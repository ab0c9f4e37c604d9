package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dnl-site-backend-go/internal/gateway"
)

// RowError reports a stored row that does not have the expected shape.
type RowError struct {
	Table  string
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Reason)
}

// rowReader collects the first mapping error of a row.
type rowReader struct {
	table string
	row   gateway.Row
	err   *RowError
}

func (r *rowReader) fail(column, reason string) {
	if r.err == nil {
		r.err = &RowError{Table: r.table, Column: column, Reason: reason}
	}
}

func (r *rowReader) requiredString(column string) string {
	value, ok := r.row[column]
	if !ok || value == nil {
		r.fail(column, "missing")
		return ""
	}
	s, ok := value.(string)
	if !ok {
		r.fail(column, fmt.Sprintf("expected text, got %T", value))
	}
	return s
}

func (r *rowReader) optionalString(column string) string {
	switch v := r.row[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		r.fail(column, fmt.Sprintf("expected text, got %T", v))
		return ""
	}
}

func (r *rowReader) integer(column string) int {
	switch v := r.row[column].(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			r.fail(column, "expected integer")
		}
		return n
	default:
		r.fail(column, fmt.Sprintf("expected integer, got %T", v))
		return 0
	}
}

func (r *rowReader) boolean(column string) bool {
	switch v := r.row[column].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(column, "expected boolean")
		}
		return b
	default:
		r.fail(column, fmt.Sprintf("expected boolean, got %T", v))
		return false
	}
}

func (r *rowReader) timestamp(column string) time.Time {
	switch v := r.row[column].(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return v
	case string:
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			r.fail(column, "expected timestamp")
		}
		return ts
	default:
		r.fail(column, fmt.Sprintf("expected timestamp, got %T", v))
		return time.Time{}
	}
}

// jsonColumn decodes a JSON column that may arrive as text, bytes or an
// already decoded value.
func (r *rowReader) jsonColumn(column string, dst any) {
	var raw []byte
	switch v := r.row[column].(type) {
	case nil:
		return
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			r.fail(column, "unencodable json value")
			return
		}
		raw = encoded
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.fail(column, "invalid json: "+err.Error())
	}
}

func (r *rowReader) result() error {
	if r.err != nil {
		return r.err
	}
	return nil
}

func ProjectFromRow(row gateway.Row) (Project, error) {
	r := &rowReader{table: TableProjects, row: row}
	p := Project{
		ID:             r.requiredString("id"),
		Title:          r.requiredString("title"),
		Description:    r.optionalString("description"),
		Type:           r.optionalString("type"),
		Status:         NormalizeStatus(r.requiredString("status")),
		ImageURL:       r.optionalString("image_url"),
		VideoURL:       r.optionalString("video_url"),
		Progress:       r.integer("progress"),
		StartDate:      r.optionalString("start_date"),
		CompletionDate: r.optionalString("completion_date"),
		CreatedAt:      r.timestamp("created_at"),
	}
	r.jsonColumn("gallery", &p.Gallery)
	if p.Gallery == nil {
		p.Gallery = []GalleryItem{}
	}
	if p.Progress < 0 || p.Progress > 100 {
		r.fail("progress", "out of range 0-100")
	}
	return p, r.result()
}

// ProjectToRow builds the write payload. The id is only included when set.
func ProjectToRow(p Project) gateway.Row {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []GalleryItem{}
	}
	encoded, _ := json.Marshal(gallery)
	row := gateway.Row{
		"title":           p.Title,
		"description":     p.Description,
		"type":            p.Type,
		"status":          string(p.Status),
		"image_url":       p.ImageURL,
		"video_url":       nullable(p.VideoURL),
		"progress":        p.Progress,
		"start_date":      p.StartDate,
		"completion_date": p.CompletionDate,
		"gallery":         string(encoded),
	}
	if p.ID != "" {
		row["id"] = p.ID
	}
	return row
}

// NormalizeStatus maps the stored project status, accepting the Portuguese
// values used by older rows. Unknown values are kept as they are.
func NormalizeStatus(raw string) ProjectStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in_progress", "em_andamento", "em andamento":
		return StatusInProgress
	case "completed", "concluido", "concluído":
		return StatusCompleted
	default:
		return ProjectStatus(raw)
	}
}

func ReviewFromRow(row gateway.Row) (Review, error) {
	r := &rowReader{table: TableReviews, row: row}
	rv := Review{
		ID:         r.requiredString("id"),
		ClientName: r.requiredString("client_name"),
		Rating:     r.integer("rating"),
		Comment:    r.optionalString("comment"),
		AvatarURL:  r.optionalString("avatar_url"),
		Date:       r.optionalString("date"),
		Approved:   r.boolean("approved"),
		CreatedAt:  r.timestamp("created_at"),
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		r.fail("rating", "out of range 1-5")
	}
	return rv, r.result()
}

func ReviewToRow(rv Review) gateway.Row {
	row := gateway.Row{
		"client_name": rv.ClientName,
		"rating":      rv.Rating,
		"comment":     rv.Comment,
		"avatar_url":  nullable(rv.AvatarURL),
		"date":        rv.Date,
		"approved":    rv.Approved,
	}
	if rv.ID != "" {
		row["id"] = rv.ID
	}
	return row
}

func BudgetRequestFromRow(row gateway.Row) (BudgetRequest, error) {
	r := &rowReader{table: TableBudgetRequests, row: row}
	b := BudgetRequest{
		ID:          r.requiredString("id"),
		Name:        r.requiredString("name"),
		Email:       r.requiredString("email"),
		Phone:       r.optionalString("phone"),
		Type:        r.optionalString("type"),
		Description: r.optionalString("description"),
		Status:      BudgetStatus(r.optionalString("status")),
		CreatedAt:   r.timestamp("created_at"),
	}
	r.jsonColumn("attachments", &b.Attachments)
	if b.Attachments == nil {
		b.Attachments = []string{}
	}
	if b.Status == "" {
		b.Status = BudgetPending
	}
	return b, r.result()
}

func BudgetRequestToRow(b BudgetRequest) gateway.Row {
	attachments := b.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	encoded, _ := json.Marshal(attachments)
	row := gateway.Row{
		"name":        b.Name,
		"email":       b.Email,
		"phone":       b.Phone,
		"type":        b.Type,
		"description": b.Description,
		"attachments": string(encoded),
		"status":      string(b.Status),
	}
	if b.ID != "" {
		row["id"] = b.ID
	}
	return row
}

func SettingsFromRow(row gateway.Row) (AppSettings, error) {
	r := &rowReader{table: TableAppSettings, row: row}
	s := AppSettings{
		NotificationEmail: r.optionalString("notification_email"),
		LogoURL:           r.optionalString("logo_url"),
		EmailAPIKey:       r.optionalString("email_api_key"),
	}
	return s, r.result()
}

func SettingsToRow(s AppSettings) gateway.Row {
	return gateway.Row{
		"id":                 SettingsRowID,
		"notification_email": s.NotificationEmail,
		"logo_url":           s.LogoURL,
		"email_api_key":      s.EmailAPIKey,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
