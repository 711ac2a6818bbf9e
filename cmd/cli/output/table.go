package output

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints a pretty table to w.
func RenderTable(w io.Writer, headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	t.Render()
}

// User is the public account view rendered by the CLI.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	LoginID   string    `json:"loginId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Enabled   bool      `json:"enabled"`
}

// RenderUser prints one account as a single-row table.
func RenderUser(w io.Writer, u User) {
	RenderTable(w,
		[]string{"ID", "Username", "Login ID", "Enabled", "Created", "Updated"},
		[][]interface{}{{
			u.ID,
			u.Username,
			u.LoginID,
			strconv.FormatBool(u.Enabled),
			u.CreatedAt.Format(time.RFC3339),
			u.UpdatedAt.Format(time.RFC3339),
		}},
	)
}
