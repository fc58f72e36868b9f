package practice

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/GermanMalykh/quaqa/pkg/models"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func topicWith(name string, n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Category: name,
			Question: fmt.Sprintf("%s-q%d", name, i),
			Answer:   fmt.Sprintf("%s-a%d", name, i),
		}
	}
	return questions
}

func TestBuildWorkingSetTakesUpToTenPerTopicInSelectionOrder(t *testing.T) {
	all := models.QuestionsByTopic{
		"go":    topicWith("go", 25),
		"sql":   topicWith("sql", 4),
		"linux": topicWith("linux", 12),
	}

	pool := NewPool(seeded(1))
	set := pool.BuildWorkingSet(all, []string{"sql", "go", "missing"})

	if len(set) != 14 {
		t.Fatalf("working set size = %d, want 14", len(set))
	}
	for i, q := range set {
		want := "go"
		if i < 4 {
			want = "sql"
		}
		if q.Category != want {
			t.Errorf("set[%d].Category = %q, want %q", i, q.Category, want)
		}
	}
}

func TestBuildWorkingSetIgnoresRepeatedTopics(t *testing.T) {
	all := models.QuestionsByTopic{"go": topicWith("go", 3)}

	pool := NewPool(seeded(2))
	if got := len(pool.BuildWorkingSet(all, []string{"go", "go"})); got != 3 {
		t.Errorf("working set size = %d, want 3", got)
	}
}

func TestNextCoversWholeSetBeforeRepeating(t *testing.T) {
	all := models.QuestionsByTopic{"go": topicWith("go", 7)}
	pool := NewPool(seeded(3))
	pool.BuildWorkingSet(all, []string{"go"})

	for round := 0; round < 3; round++ {
		seen := make(map[string]bool)
		for i := 0; i < pool.Len(); i++ {
			q, err := pool.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if seen[q.Question] {
				t.Fatalf("round %d: %q repeated before exhaustion", round, q.Question)
			}
			seen[q.Question] = true
		}
		if !pool.Exhausted() {
			t.Fatalf("round %d: pool should be exhausted", round)
		}
	}
}

func TestNextWrapsAroundAfterExhaustion(t *testing.T) {
	all := models.QuestionsByTopic{"go": topicWith("go", 2)}
	pool := NewPool(seeded(4))
	pool.BuildWorkingSet(all, []string{"go"})

	for i := 0; i < 5; i++ {
		if _, err := pool.Next(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if pool.Served() != 1 {
		t.Errorf("Served = %d after 5 draws over 2 items, want 1", pool.Served())
	}
}

func TestNextOnEmptyPool(t *testing.T) {
	pool := NewPool(nil)
	pool.BuildWorkingSet(models.QuestionsByTopic{}, []string{"go"})

	if _, err := pool.Next(); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("Next error = %v, want ErrNoQuestion", err)
	}
}
