package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GermanMalykh/quaqa/pkg/ladder"
	"github.com/GermanMalykh/quaqa/pkg/lifeline"
	"github.com/GermanMalykh/quaqa/pkg/models"
	"github.com/GermanMalykh/quaqa/pkg/practice"
)

func TestPracticeFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seed(t, fixture())

	view, err := e.practice.Start(ctx, []string{"Basics"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.WorkingSetSize != 10 || view.Question == nil || view.Number != 1 {
		t.Fatalf("view = %+v", view)
	}

	view, err = e.practice.Next(view.SessionID, 4.5)
	if err != nil {
		t.Fatal(err)
	}
	if view.Number != 2 {
		t.Errorf("number = %d, want 2", view.Number)
	}

	view, err = e.practice.Finish(view.SessionID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Finished || len(view.Answered) != 2 || view.TotalTime != 7 {
		t.Errorf("finished view = %+v", view)
	}
	if view.Answered[0].Time != 4 {
		t.Errorf("first time = %d, want 4", view.Answered[0].Time)
	}

	if _, err := e.practice.Next(view.SessionID, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err after finish = %v", err)
	}
}

func TestPracticeWithoutQuestions(t *testing.T) {
	e := newEnv(t)
	_, err := e.practice.Start(context.Background(), nil)
	if !errors.Is(err, practice.ErrNoQuestion) {
		t.Errorf("err = %v, want ErrNoQuestion", err)
	}
}

func (e *env) game(t *testing.T, id string) *ladder.Game {
	t.Helper()
	sess, ok := e.sessions.get(id)
	if !ok {
		t.Fatalf("session %s missing", id)
	}
	return sess.game.(*ladder.Game)
}

func correctDisplay(g *ladder.Game) int {
	q, _ := g.CurrentQuestion()
	return g.DisplayIndex(q.CorrectIndex())
}

// winLadder juega una escalera completa respondiendo bien
func (e *env) winLadder(t *testing.T) models.LadderView {
	t.Helper()
	ctx := context.Background()

	view, err := e.ladder.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.State != models.LadderStart || view.Fallback {
		t.Fatalf("created view = %+v", view)
	}
	id := view.SessionID
	if _, err := e.ladder.Start(id); err != nil {
		t.Fatal(err)
	}

	for rung := 0; rung < ladder.LadderSize; rung++ {
		view, err = e.ladder.Answer(ctx, id, correctDisplay(e.game(t, id)))
		if err != nil {
			t.Fatalf("Answer on rung %d: %v", rung, err)
		}
		if rung < ladder.LadderSize-1 {
			if _, err := e.ladder.Next(id); err != nil {
				t.Fatal(err)
			}
		}
	}
	return view
}

func TestLadderWinRecordsHistory(t *testing.T) {
	e := newEnv(t)
	e.seed(t, fixture())

	view := e.winLadder(t)
	if view.State != models.LadderWon || view.Score != 1000000 {
		t.Fatalf("final view = %+v", view)
	}

	if n := e.events.count(EventLadderAnswer); n != ladder.LadderSize {
		t.Errorf("answer events = %d", n)
	}
	if n := e.events.count(EventLadderFinished); n != 1 {
		t.Errorf("finished events = %d", n)
	}

	stored, err := e.store.LoadHistory(context.Background())
	if err != nil || len(stored) != 1 || len(stored[0]) != ladder.LadderSize {
		t.Fatalf("stored history = %v, %v", stored, err)
	}
	if got := e.history.Response(); len(got.Excluded) != ladder.LadderSize {
		t.Errorf("excluded = %d", len(got.Excluded))
	}

	if _, err := e.ladder.Start(view.SessionID); !errors.Is(err, ladder.ErrIllegalTransition) {
		t.Errorf("restart after win err = %v", err)
	}
	if got := e.history.Response(); len(got.Games) != 1 {
		t.Errorf("games after rejected restart = %d", len(got.Games))
	}
}

func TestLadderAvoidsRecentQuestions(t *testing.T) {
	e := newEnv(t)
	e.seed(t, fixture())

	e.winLadder(t)
	used := e.history.Response().Excluded

	view, err := e.ladder.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	g := e.game(t, view.SessionID)
	for _, id := range g.SelectedQuestionIDs() {
		for _, u := range used {
			if id == u {
				t.Fatalf("question %d repeated from the previous game", id)
			}
		}
	}
}

func TestLadderLosingPaysSafeHaven(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seed(t, fixture())

	view, _ := e.ladder.Create(ctx)
	id := view.SessionID
	e.ladder.Start(id)

	g := e.game(t, id)
	wrong := (correctDisplay(g) + 1) % 4
	view, err := e.ladder.Answer(ctx, id, wrong)
	if err != nil {
		t.Fatal(err)
	}
	if view.State != models.LadderLost || view.Score != 0 || view.CorrectAnswer == nil {
		t.Errorf("view = %+v", view)
	}

	if _, err := e.ladder.Answer(ctx, id, wrong); !errors.Is(err, ladder.ErrIllegalTransition) {
		t.Errorf("second answer err = %v", err)
	}
	if n := e.events.count(EventLadderFinished); n != 1 {
		t.Errorf("finished events = %d", n)
	}
}

func TestLadderNeedsFifteenQuestions(t *testing.T) {
	e := newEnv(t)
	e.seed(t, models.QuestionsByTopic{"Tiny": fixture()["Basics"]})

	_, err := e.ladder.Create(context.Background())
	if !errors.Is(err, ladder.ErrInsufficientQuestions) {
		t.Errorf("err = %v, want ErrInsufficientQuestions", err)
	}
}

func TestLadderLifelineOnce(t *testing.T) {
	e := newEnv(t)
	e.seed(t, fixture())

	view, _ := e.ladder.Create(context.Background())
	id := view.SessionID
	e.ladder.Start(id)

	result, err := e.ladder.Lifeline(id, models.LifelineFiftyFifty)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Removed) != 2 {
		t.Errorf("removed = %v", result.Removed)
	}

	if _, err := e.ladder.Lifeline(id, models.LifelineFiftyFifty); !errors.Is(err, ErrLifelineUnavailable) {
		t.Errorf("second use err = %v", err)
	}
	if _, err := e.ladder.Lifeline(id, "double-dip"); !errors.Is(err, lifeline.ErrUnknownLifeline) {
		t.Errorf("unknown lifeline error = %v", err)
	}
	if n := e.events.count(EventLadderLifeline); n != 1 {
		t.Errorf("lifeline events = %d", n)
	}
}

func TestWrongGameKind(t *testing.T) {
	e := newEnv(t)
	e.seed(t, fixture())

	view, err := e.practice.Start(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.ladder.View(view.SessionID); !errors.Is(err, ErrWrongGame) {
		t.Errorf("err = %v, want ErrWrongGame", err)
	}
	if _, err := e.ladder.View("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestBlastAnnouncesGameOverOnce(t *testing.T) {
	e := newEnv(t)
	e.seed(t, fixture())

	view, err := e.blast.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Targets) != 3 {
		t.Fatalf("targets = %v", view.Targets)
	}

	view, err = e.blast.Tick(view.SessionID, 11)
	if err != nil {
		t.Fatal(err)
	}
	if !view.Over {
		t.Fatal("expected game over")
	}
	e.blast.View(view.SessionID)

	if n := e.events.count(EventBlastOver); n != 1 {
		t.Errorf("blastOver events = %d, want 1", n)
	}
}

func TestHistoryServiceLoadsStoredEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.store.PushHistory(ctx, []int{1, 2})
	e.store.PushHistory(ctx, []int{3})

	h := NewHistoryService(ctx, e.store, e.history.log)
	resp := h.Response()
	if len(resp.Games) != 2 || resp.Games[0][0] != 3 {
		t.Errorf("games = %v", resp.Games)
	}
	if len(resp.Excluded) != 3 {
		t.Errorf("excluded = %v", resp.Excluded)
	}

	if err := h.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if stored, _ := e.store.LoadHistory(ctx); len(stored) != 0 {
		t.Errorf("stored history after clear = %v", stored)
	}
}

func TestHistoryServiceReset(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.history.Record(ctx, []int{4, 5, 6})

	e.history.Reset(ctx, "banco nuevo")

	if resp := e.history.Response(); len(resp.Games) != 0 || len(resp.Excluded) != 0 {
		t.Errorf("history after reset = %+v", resp)
	}
	if stored, _ := e.store.LoadHistory(ctx); len(stored) != 0 {
		t.Errorf("stored history after reset = %v", stored)
	}
}

func TestReapRemovesIdleSessions(t *testing.T) {
	e := newEnv(t)
	now := time.Now()
	e.sessions.now = func() time.Time { return now }

	idle := e.sessions.Create(models.GamePractice, practice.NewSession(nil))
	now = now.Add(45 * time.Second)
	fresh := e.sessions.Create(models.GamePractice, practice.NewSession(nil))
	now = now.Add(30 * time.Second)

	if n := e.sessions.reap(); n != 1 {
		t.Fatalf("reaped = %d, want 1", n)
	}
	if _, ok := e.sessions.Kind(idle); ok {
		t.Error("idle session survived")
	}
	if _, ok := e.sessions.Kind(fresh); !ok {
		t.Error("fresh session reaped")
	}
	if got := e.sessions.Counts()[models.GamePractice]; got != 1 {
		t.Errorf("practice sessions = %d", got)
	}
}
