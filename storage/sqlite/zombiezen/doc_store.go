package zombiezen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]storage.Source, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []storage.Source
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			src := storage.Source{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: splitLabels(stmt.ColumnText(2)),
			}
			if storage.MatchLabel(src.Labels, labelMatch) {
				docs = append(docs, src)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (storage.Source, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return storage.Source{}, err
	}
	defer h.pool.Put(conn)

	src := storage.Source{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels, markup, feed FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			src.Title = stmt.ColumnText(0)
			src.Labels = splitLabels(stmt.ColumnText(1))
			src.Markup = []byte(stmt.ColumnText(2))
			if feed := stmt.ColumnText(3); feed != "" {
				src.Feed = []byte(feed)
			}
			return nil
		},
	})
	if err != nil {
		return storage.Source{}, err
	}
	if !found {
		return storage.Source{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}

	return src, nil
}

func (h *DocStore) Links(kbid string) ([]storage.Link, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := `SELECT l.kbid, l.doc_id, d.title, l.reference_id, l.text, l.mentions
		FROM links l JOIN docs d ON d.id = l.doc_id
		WHERE l.kbid = ? ORDER BY l.doc_id, l.reference_id`

	var links []storage.Link
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []interface{}{kbid},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			links = append(links, storage.Link{
				KBID:        stmt.ColumnText(0),
				DocId:       stmt.ColumnInt(1),
				DocTitle:    stmt.ColumnText(2),
				ReferenceID: stmt.ColumnInt(3),
				Text:        stmt.ColumnText(4),
				Mentions:    stmt.ColumnInt(5),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	unique := map[string]bool{}
	for _, d := range docs {
		for _, l := range d.Labels {
			if pattern == "" || strings.Contains(l, pattern) {
				unique[l] = true
			}
		}
	}

	labels := make([]string, 0, len(unique))
	for l := range unique {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	return labels, nil
}

func (h *DocStore) Write(src storage.Source, doc *sent.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(src.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, markup, feed) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{src.Title, labels, string(src.Markup), string(src.Feed)},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	id = int(conn.LastInsertRowID())

	for _, l := range storage.LinksOf(id, src.Title, doc) {
		err = sqlitex.Execute(conn, "INSERT INTO links (kbid, doc_id, reference_id, text, mentions) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{l.KBID, l.DocId, l.ReferenceID, l.Text, l.Mentions},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert link: %w", err)
		}
	}

	return id, nil
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
