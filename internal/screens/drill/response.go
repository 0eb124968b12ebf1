package drill

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/speech"
)

// maxUpload caps image and recording files read from disk.
const maxUpload = 20 << 20

// BuildResponse turns what the learner entered into a grading.Response.
// chosen is the picked option for multiple-choice rounds; value is the
// typed text or file path for the others.
func BuildResponse(r *quiz.Round, chosen int, value string) (grading.Response, error) {
	switch r.Modality.Family() {
	case quiz.FamilyChoice:
		if chosen < 0 || chosen >= len(r.Options) {
			return grading.Response{}, grading.ErrNoChoice
		}
		return grading.Response{ChoiceID: r.Options[chosen].ID()}, nil

	case quiz.FamilyDictation:
		return grading.Response{Text: value}, nil

	case quiz.FamilySpoken:
		// A path to a recording is transcribed; anything else is taken as
		// what the learner said.
		if path := cleanPath(value); isFile(path) {
			data, err := readUpload(path)
			if err != nil {
				return grading.Response{}, err
			}
			return grading.Response{Clip: &speech.Clip{Data: data, Filename: filepath.Base(path)}}, nil
		}
		return grading.Response{Text: value}, nil

	case quiz.FamilyHandwriting:
		path := cleanPath(value)
		if path == "" {
			return grading.Response{}, grading.ErrNoDrawingSubmitted
		}
		data, err := readUpload(path)
		if err != nil {
			return grading.Response{}, err
		}
		return grading.Response{Drawing: &grading.Drawing{
			Data:     data,
			MIMEType: http.DetectContentType(data),
		}}, nil
	}
	return grading.Response{}, fmt.Errorf("unsupported modality %q", r.Modality)
}

// cleanPath strips the quotes terminals add when a file is dropped in and
// expands a leading "~/".
func cleanPath(v string) string {
	v = strings.Trim(strings.TrimSpace(v), `'"`)
	if strings.HasPrefix(v, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			v = filepath.Join(home, v[2:])
		}
	}
	return v
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func readUpload(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("read %s: not a file", filepath.Base(path))
	}
	if fi.Size() > maxUpload {
		return nil, fmt.Errorf("read %s: file is larger than %d MB", filepath.Base(path), maxUpload>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil, errors.New("the file is empty")
	}
	return data, nil
}

// Describe turns a submission error into a retry prompt.
func Describe(err error) string {
	switch {
	case errors.Is(err, grading.ErrTranscriptionEmpty):
		return "No speech captured. Try the recording again."
	case errors.Is(err, grading.ErrNoDrawingSubmitted):
		return "Enter the path to an image of your handwriting."
	case errors.Is(err, grading.ErrNoChoice):
		return "Pick one of the options."
	}
	return err.Error()
}
