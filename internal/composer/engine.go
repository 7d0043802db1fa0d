// Package composer orchestrates one presentation-editing turn: it resolves
// the user's instruction to an operation, calls the model with a scoped
// prompt, reconciles the response against the live deck, and persists the
// resulting revision. A failed turn leaves the stored deck untouched.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/intent"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/llm"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/reconcile"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

// Engine runs generation and edit turns against sessions.
type Engine struct {
	store      *session.Store
	provider   llm.Provider
	model      string
	classifier intent.Classifier
	theme      string
	maxSlides  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Options configures an Engine.
type Options struct {
	Theme      string
	MaxSlides  int
	Classifier intent.Classifier // nil selects the rule classifier
}

// NewEngine creates a new composer engine.
func NewEngine(store *session.Store, provider llm.Provider, model string, opts Options) *Engine {
	if opts.MaxSlides < 1 {
		opts.MaxSlides = 30
	}
	return &Engine{
		store:      store,
		provider:   provider,
		model:      model,
		classifier: opts.Classifier,
		theme:      opts.Theme,
		maxSlides:  opts.MaxSlides,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Result is the outcome of one turn.
type Result struct {
	SessionID     string   `json:"session_id"`
	Operation     string   `json:"operation"` // "generation", "add", "edit", "expand", "clarification"
	Revision      int      `json:"revision,omitempty"`
	SlideCount    int      `json:"slide_count,omitempty"`
	Clarification string   `json:"clarification,omitempty"`
	Note          string   `json:"note,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// sessionLock serializes turns per session. Two concurrent edits against
// the same deck would otherwise race on the revision chain.
func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[sessionID] = l
	}
	return l
}

// Generate runs a whole-deck generation turn for the session.
func (e *Engine) Generate(ctx context.Context, sessionID, topic string) (*Result, error) {
	l := e.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	e.store.AddMessage(ctx, session.Message{SessionID: sessionID, Role: "user", Content: topic})

	d, err := e.generateDeck(ctx, sessionID, topic)
	if err != nil {
		return nil, err
	}
	rev, err := e.store.SaveDeck(ctx, sessionID, d, "generate")
	if err != nil {
		return nil, err
	}
	if d.Title != "" {
		e.store.SetTitle(ctx, sessionID, d.Title)
	}
	e.store.AddMessage(ctx, session.Message{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   fmt.Sprintf("Generated a deck with %d slides.", len(d.Slides)),
	})
	return &Result{
		SessionID:  sessionID,
		Operation:  "generation",
		Revision:   rev.Revision,
		SlideCount: len(d.Slides),
	}, nil
}

// Edit runs one edit turn: resolve the instruction, call the model scoped to
// the resolved window, reconcile, persist. A clarification result carries no
// revision and mutates nothing.
func (e *Engine) Edit(ctx context.Context, sessionID, instruction string, sel *intent.Selection) (*Result, error) {
	l := e.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	current, _, err := e.store.CurrentDeck(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	decision := intent.Resolve(instruction, sel, current, e.classifier)

	e.store.AddMessage(ctx, session.Message{SessionID: sessionID, Role: "user", Content: instruction})

	switch decision.Kind {
	case intent.Ambiguous:
		e.store.AddMessage(ctx, session.Message{SessionID: sessionID, Role: "assistant", Content: decision.Clarification})
		return &Result{
			SessionID:     sessionID,
			Operation:     "clarification",
			Clarification: decision.Clarification,
		}, nil

	case intent.Generation:
		d, err := e.generateDeck(ctx, sessionID, instruction)
		if err != nil {
			return nil, err
		}
		rev, err := e.store.SaveDeck(ctx, sessionID, d, "generate")
		if err != nil {
			return nil, err
		}
		if d.Title != "" {
			e.store.SetTitle(ctx, sessionID, d.Title)
		}
		return &Result{
			SessionID:  sessionID,
			Operation:  "generation",
			Revision:   rev.Revision,
			SlideCount: len(d.Slides),
		}, nil
	}

	if current == nil {
		return nil, fmt.Errorf("session %s has no deck to edit", sessionID)
	}

	w := windowFor(decision)
	prompt := buildEditPrompt(instruction, selectedSlides(decision, current), current.CSS, decision.Kind == intent.Add)

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: editSystemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   8192,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM completion: %w", err)
	}
	e.recordUsage(ctx, sessionID, resp)

	env, err := reconcile.ParseEnvelope(resp.Content, w)
	if err != nil {
		var pf *reconcile.ParseFailure
		if errors.As(err, &pf) {
			// The deck stays as it was; the failure is reported, never
			// papered over with a whole-deck replacement.
			e.store.AddMessage(ctx, session.Message{SessionID: sessionID, Role: "assistant", Content: pf.Error()})
		}
		return nil, err
	}

	next, warnings, err := reconcile.Apply(current, env)
	if err != nil {
		return nil, fmt.Errorf("applying edit: %w", err)
	}
	for _, warning := range warnings {
		log.Printf("session %s: %s", sessionID, warning)
	}

	rev, err := e.store.SaveDeck(ctx, sessionID, next, w.Kind.String())
	if err != nil {
		return nil, err
	}
	e.store.AddMessage(ctx, session.Message{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   fmt.Sprintf("Applied %s; deck now has %d slides.", w.Kind, len(next.Slides)),
	})

	return &Result{
		SessionID:  sessionID,
		Operation:  w.Kind.String(),
		Revision:   rev.Revision,
		SlideCount: len(next.Slides),
		Note:       decision.Note,
		Warnings:   warnings,
	}, nil
}

// Export returns the session's current deck knitted into one HTML document.
func (e *Engine) Export(ctx context.Context, sessionID string) (string, error) {
	d, _, err := e.store.CurrentDeck(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", fmt.Errorf("session %s has no deck", sessionID)
	}
	return d.Knit(), nil
}

// CurrentDeck exposes the session's live deck for read-only surfaces.
func (e *Engine) CurrentDeck(ctx context.Context, sessionID string) (*deck.SlideDeck, int, error) {
	return e.store.CurrentDeck(ctx, sessionID)
}

// Store exposes the underlying session store.
func (e *Engine) Store() *session.Store {
	return e.store
}

func (e *Engine) generateDeck(ctx context.Context, sessionID, topic string) (*deck.SlideDeck, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: generationSystemPrompt},
			{Role: llm.RoleUser, Content: buildGenerationPrompt(topic, e.theme, e.maxSlides)},
		},
		MaxTokens:   16384,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM completion: %w", err)
	}
	e.recordUsage(ctx, sessionID, resp)

	d, err := deck.Decompose(reconcile.StripFences(resp.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing generated deck: %w", err)
	}
	for _, a := range d.Anomalies {
		log.Printf("session %s: %s", sessionID, a)
	}
	return d, nil
}

func (e *Engine) recordUsage(ctx context.Context, sessionID string, resp *llm.CompletionResponse) {
	if sessionID == "" {
		return
	}
	if resp.Truncated() {
		log.Printf("session %s: model response truncated at %d output tokens", sessionID, resp.OutputTokens)
	}
	e.store.AddMessage(ctx, session.Message{
		SessionID:    sessionID,
		Role:         "system",
		Content:      fmt.Sprintf("model=%s cost=$%.4f", resp.Model, llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)),
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	})
}

func windowFor(d intent.Decision) reconcile.Window {
	switch d.Kind {
	case intent.Add:
		return reconcile.Window{Kind: reconcile.OpAdd, InsertAt: d.InsertAt}
	default:
		kind := reconcile.OpEdit
		if d.Expand {
			kind = reconcile.OpExpand
		}
		return reconcile.Window{
			Kind:          kind,
			StartIndex:    d.TargetStart,
			OriginalCount: d.TargetCount,
			StyleOnly:     d.StyleOnly,
		}
	}
}

func selectedSlides(d intent.Decision, current *deck.SlideDeck) []*deck.Slide {
	if d.Kind == intent.Add {
		return nil
	}
	var out []*deck.Slide
	for i := d.TargetStart; i < d.TargetStart+d.TargetCount && i < len(current.Slides); i++ {
		out = append(out, current.Slides[i])
	}
	return out
}
