// internal/spelling/session.go
//
// Dictation session for the spelling mode.
// Responsibilities:
//   - Walk an ordered list of entries, one question at a time.
//   - Reveal a growing prefix of the word as a hint (1 letter, plus one per
//     mistake and per requested hint).
//   - Reveal the English gloss once the question has been open long enough.
//   - Check answers, count mistakes and keep a per-word wrong-answer record.
//
// State transitions per question: open → solved → (Next) open | finished.

package spelling

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/vocabgame/internal/clock"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

// DefaultRevealAfter is how long a question stays open before the English
// gloss is shown.
const DefaultRevealAfter = 10 * time.Second

// maxImages is the number of glyph hints shown per question.
const maxImages = 4

var (
	ErrInvalidAnswer = errors.New("spelling: answer must be letters a-z matching the word length")
	ErrNotSolved     = errors.New("spelling: current question not solved")
	ErrAlreadySolved = errors.New("spelling: current question already solved")
	ErrFinished      = errors.New("spelling: session finished")
	ErrClosed        = errors.New("spelling: session closed")
)

var lower = cases.Lower(language.English)

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Clock       clock.Clock
	RevealAfter time.Duration
}

// WrongAnswer counts the mistakes made on one word.
type WrongAnswer struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Mistakes   int    `json:"mistakes"`
}

// Prompt is what the learner sees for the current question.
type Prompt struct {
	Index        int            `json:"index"` // 1-based
	Total        int            `json:"total"`
	Definition   string         `json:"definition"`
	PartOfSpeech string         `json:"partOfSpeech"`
	Images       []string       `json:"images"`
	Length       int            `json:"length"`
	Hint         string         `json:"hint"`
	EnglishDef   string         `json:"englishDef,omitempty"`
	Solved       bool           `json:"solved"`
	Word         string         `json:"word,omitempty"`
	Example      *vocab.Example `json:"example,omitempty"`
	Mistakes     int            `json:"mistakes"`
	Finished     bool           `json:"finished"`
}

// Session is one spelling run.
type Session struct {
	mu          sync.Mutex
	clock       clock.Clock
	revealAfter time.Duration
	items       []vocab.Entry
	index       int
	mistakes    int
	qMistakes   int
	extraHints  int
	solved      bool
	finished    bool
	closed      bool
	qStarted    time.Time
	wrong       []WrongAnswer
}

// New starts a session over items, in order.
func New(items []vocab.Entry, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.RevealAfter <= 0 {
		opts.RevealAfter = DefaultRevealAfter
	}
	return &Session{
		clock:       opts.Clock,
		revealAfter: opts.RevealAfter,
		items:       items,
		finished:    len(items) == 0,
		qStarted:    opts.Clock.Now(),
	}
}

// Prompt returns the current question.
func (s *Session) Prompt() Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptLocked()
}

func (s *Session) promptLocked() Prompt {
	if s.finished {
		return Prompt{Index: len(s.items), Total: len(s.items), Mistakes: s.mistakes, Finished: true}
	}
	e := s.items[s.index]
	tag, rest := vocab.SplitPartOfSpeech(e.Definition)
	p := Prompt{
		Index:        s.index + 1,
		Total:        len(s.items),
		Definition:   rest,
		PartOfSpeech: tag,
		Images:       append([]string{}, e.Images[:min(len(e.Images), maxImages)]...),
		Length:       len(e.Word),
		Hint:         e.Word[:s.hintLenLocked()],
		Solved:       s.solved,
		Mistakes:     s.mistakes,
	}
	if s.solved || s.clock.Now().Sub(s.qStarted) >= s.revealAfter {
		p.EnglishDef = e.EnglishDef
	}
	if s.solved {
		p.Word = e.Word
		ex := e.Example
		p.Example = &ex
	}
	return p
}

func (s *Session) hintLenLocked() int {
	return min(1+s.qMistakes+s.extraHints, len(s.items[s.index].Word))
}

// Submit checks answer against the current word. Answers are case-folded
// and must be exactly as long as the word.
func (s *Session) Submit(answer string) (bool, Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.openLocked(); err != nil {
		return false, s.promptLocked(), err
	}
	if s.solved {
		return false, s.promptLocked(), ErrAlreadySolved
	}

	e := s.items[s.index]
	answer = lower.String(strings.TrimSpace(answer))
	if len(answer) != len(e.Word) || !isLetters(answer) {
		return false, s.promptLocked(), ErrInvalidAnswer
	}

	if answer == e.Word {
		s.solved = true
		return true, s.promptLocked(), nil
	}

	s.mistakes++
	s.qMistakes++
	s.recordWrongLocked(e)
	return false, s.promptLocked(), nil
}

// recordWrongLocked bumps the mistake count for e.Word, moving the record
// to the end of the list.
func (s *Session) recordWrongLocked(e vocab.Entry) {
	n := 0
	kept := s.wrong[:0]
	for _, w := range s.wrong {
		if w.Word == e.Word {
			n = w.Mistakes
			continue
		}
		kept = append(kept, w)
	}
	s.wrong = append(kept, WrongAnswer{Word: e.Word, Definition: e.Definition, Mistakes: n + 1})
}

// Hint reveals one more letter of the current word.
func (s *Session) Hint() (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.openLocked(); err != nil {
		return s.promptLocked(), err
	}
	if !s.solved && s.hintLenLocked() < len(s.items[s.index].Word) {
		s.extraHints++
	}
	return s.promptLocked(), nil
}

// Next moves past a solved question. After the last one the session is
// finished.
func (s *Session) Next() (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.openLocked(); err != nil {
		return s.promptLocked(), err
	}
	if !s.solved {
		return s.promptLocked(), ErrNotSolved
	}
	if s.index == len(s.items)-1 {
		s.finished = true
		return s.promptLocked(), nil
	}
	s.index++
	s.solved = false
	s.qMistakes = 0
	s.extraHints = 0
	s.qStarted = s.clock.Now()
	return s.promptLocked(), nil
}

// Review returns the wrong-answer records, most mistakes first.
func (s *Session) Review() []WrongAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]WrongAnswer{}, s.wrong...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mistakes > out[j].Mistakes })
	return out
}

// Close aborts the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) openLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.finished:
		return ErrFinished
	}
	return nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
