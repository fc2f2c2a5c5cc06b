package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(w *WriterService, records ...domain.Record) {
	in := make(chan domain.Record)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, in)
	for _, r := range records {
		in <- r
	}
	close(in)
	wg.Wait()
}

func TestWriterService_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := &WriterService{Out: &buf}
	run(w, domain.Record{ID: 1, Name: "bulbasaur"}, domain.Record{ID: 4, Name: "charmander"})

	require.NoError(t, w.Err())
	assert.Equal(t, 2, w.Written())

	sc := bufio.NewScanner(&buf)
	var names []string
	for sc.Scan() {
		var r domain.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"bulbasaur", "charmander"}, names)
}

func TestWriterService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dex.ndjson")
	run(&WriterService{FilePath: path}, domain.Record{ID: 7, Name: "squirtle"})
	run(&WriterService{FilePath: path}, domain.Record{ID: 8, Name: "wartortle"})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(raw, []byte("\n")), "file is appended to")
}

func TestWriterService_BadPathDrainsInput(t *testing.T) {
	w := &WriterService{FilePath: filepath.Join(t.TempDir(), "missing", "dir", "x.ndjson")}
	run(w, domain.Record{ID: 1})
	assert.Error(t, w.Err())
	assert.Zero(t, w.Written())
}
