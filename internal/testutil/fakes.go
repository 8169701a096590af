package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FakeDownloader writes canned content instead of fetching URLs.
type FakeDownloader struct {
	Content []byte
	// Err, when set, fails every download after recording the URL.
	Err error

	URLs  []string
	Paths []string
}

// Download implements install.Downloader.
func (f *FakeDownloader) Download(ctx context.Context, url, destPath string) error {
	f.URLs = append(f.URLs, url)
	f.Paths = append(f.Paths, destPath)
	if f.Err != nil {
		return f.Err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destPath, f.Content, 0o644)
}

// FakePrompter answers prompts from a queue. An exhausted queue behaves
// like closed input: confirmations are "no" and choices are empty.
type FakePrompter struct {
	Answers []string
	Asked   []string
}

// NewFakePrompter creates a FakePrompter with the given answers.
func NewFakePrompter(answers ...string) *FakePrompter {
	return &FakePrompter{Answers: answers}
}

// Confirm implements prompt.Prompter.
func (f *FakePrompter) Confirm(ctx context.Context, question string) bool {
	return strings.EqualFold(f.next(question), "y")
}

// Choose implements prompt.Prompter.
func (f *FakePrompter) Choose(ctx context.Context, question string) string {
	return f.next(question)
}

func (f *FakePrompter) next(question string) string {
	f.Asked = append(f.Asked, question)
	if len(f.Answers) == 0 {
		return ""
	}
	answer := f.Answers[0]
	f.Answers = f.Answers[1:]
	return strings.TrimSpace(answer)
}
