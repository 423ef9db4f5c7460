package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/model"
)

// Reader decodes the JSON export files of a single conversation folder.
// Every string it lifts out of the source (titles, participant names,
// sender names, message content) has already been through the encoding
// fix by the time a document leaves this type.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadFolder parses every *.json file directly inside dir, in glob
// order. A file that cannot be read or parsed is logged and skipped;
// one corrupt file never fails the folder. The returned slice holds
// only the documents that decoded successfully and may be empty.
//
// The error return covers the folder itself being unreadable, nothing
// file-level.
func (r *Reader) ReadFolder(dir string) ([]*model.ArchiveDocument, error) {
	pattern := filepath.Join(dir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	docs := make([]*model.ArchiveDocument, 0, len(files))
	for _, file := range files {
		doc, err := r.readFile(file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("skipping unreadable export file")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *Reader) readFile(path string) (*model.ArchiveDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc model.ArchiveDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	fixDocument(&doc)
	return &doc, nil
}

// fixDocument applies the encoding fix to every string field lifted
// from the source document.
func fixDocument(doc *model.ArchiveDocument) {
	doc.Title = fixEncoding(doc.Title)
	for i := range doc.Participants {
		doc.Participants[i].Name = fixEncoding(doc.Participants[i].Name)
	}
	for i := range doc.Messages {
		doc.Messages[i].SenderName = fixEncoding(doc.Messages[i].SenderName)
		if doc.Messages[i].Content != "" {
			doc.Messages[i].Content = fixEncoding(doc.Messages[i].Content)
		}
	}
}
