package service

import (
	"context"
	"errors"
	"testing"
	"time"

	infraKafka "recipe-finder/internal/infra/kafka"
)

func TestAverageRatingWithoutComments(t *testing.T) {
	f := newFixture(t)

	if got := f.comments.AverageRating(context.Background(), "52772"); got != 0 {
		t.Errorf("average = %v, want 0", got)
	}
}

func TestAverageRatingIsArithmeticMean(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	thread := f.comments.LoadThread(ctx, "52772")

	for _, r := range []int{3, 4, 5} {
		if _, err := f.comments.SubmitComment(ctx, thread, "u1", "Ann", "tasty", r); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if got := f.comments.AverageRating(ctx, "52772"); got != 4.0 {
		t.Errorf("average = %v, want 4.0", got)
	}
	if got := thread.Average(); got != 4.0 {
		t.Errorf("thread average = %v, want 4.0", got)
	}
	if got := f.comments.AverageRating(ctx, "other"); got != 0 {
		t.Errorf("other meal average = %v", got)
	}
}

func TestSubmitCommentAppendsOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	thread := f.comments.LoadThread(ctx, "52772")

	c, err := f.comments.SubmitComment(ctx, thread, "u1", "Ann", "  needs more garlic ", 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		t.Errorf("server fields not assigned: %+v", c)
	}

	comments := thread.Comments()
	if thread.Len() != 1 || len(comments) != 1 {
		t.Fatalf("thread len = %d", thread.Len())
	}
	if comments[0].Text != "  needs more garlic " || comments[0].Rating != 2 || comments[0].UserName != "Ann" {
		t.Errorf("comment not stored verbatim: %+v", comments[0])
	}

	reloaded := f.comments.LoadThread(ctx, "52772")
	if reloaded.Len() != 1 || reloaded.Comments()[0].ID != c.ID {
		t.Errorf("reloaded = %+v", reloaded.Comments())
	}

	events := f.events()
	if len(events) != 1 || events[0].Type != infraKafka.EventCommentCreated || events[0].Rating == nil || *events[0].Rating != 2 {
		t.Errorf("events = %+v", events)
	}
}

func TestSubmitCommentNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	thread := f.comments.LoadThread(ctx, "52772")

	f.comments.SubmitComment(ctx, thread, "u1", "Ann", "first", 3)
	f.comments.SubmitComment(ctx, thread, "u2", "Bob", "second", 5)

	if got := thread.Comments()[0].Text; got != "second" {
		t.Errorf("head = %q, want newest", got)
	}
}

func TestSubmitCommentRejectsBlankText(t *testing.T) {
	f := newFixture(t)
	thread := NewCommentThread("52772", nil)

	if _, err := f.comments.SubmitComment(context.Background(), thread, "u1", "Ann", "   ", 3); !errors.Is(err, ErrInvalidComment) {
		t.Fatalf("err = %v", err)
	}
	if thread.Len() != 0 {
		t.Error("thread must not change")
	}
}

func TestCommentReadFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.breakDB(t)

	if got := f.comments.AverageRating(ctx, "52772"); got != 0 {
		t.Errorf("average = %v", got)
	}
	thread := f.comments.LoadThread(ctx, "52772")
	if thread.Len() != 0 || thread.Average() != 0 {
		t.Errorf("thread = %d comments", thread.Len())
	}

	if _, err := f.comments.SubmitComment(ctx, thread, "u1", "Ann", "text", 4); err == nil {
		t.Fatal("submit should fail on a broken store")
	}
	if thread.Len() != 0 {
		t.Error("failed submit must not append")
	}
	if len(f.events()) != 0 {
		t.Error("failed submit must not publish")
	}
}

func TestCommentListsAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	thread := f.comments.LoadThread(ctx, "52772")
	f.comments.SubmitComment(ctx, thread, "u1", "Ann", "a", 1)
	f.comments.SubmitComment(ctx, thread, "u1", "Ann", "b", 5)
	other := f.comments.LoadThread(ctx, "52959")
	f.comments.SubmitComment(ctx, other, "u2", "Bob", "c", 4)

	list, err := f.comments.ListByMeal(ctx, "52772", 1, 1)
	if err != nil || list.Total != 2 || len(list.Comments) != 1 || list.TotalPages != 2 {
		t.Errorf("list = %+v, %v", list, err)
	}

	mine, err := f.comments.ListByUser(ctx, "u1", 1, 10)
	if err != nil || mine.Total != 2 {
		t.Errorf("mine = %+v, %v", mine, err)
	}

	sum := f.comments.Summary(ctx, "52772")
	if sum.TotalComments != 2 || sum.AverageRating != 3 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestPublishFailureDoesNotFailComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.publisher.err = errBoom
	thread := f.comments.LoadThread(ctx, "52772")

	if _, err := f.comments.SubmitComment(ctx, thread, "u1", "Ann", "ok", 4); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if thread.Len() != 1 {
		t.Error("comment should be appended")
	}
}

func TestSubmitCommentDoesNotWaitForPublisher(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := newBlockingPublisher()
	comments := NewCommentService(f.cmtRepo, pub)
	thread := comments.LoadThread(ctx, "52772")

	start := time.Now()
	if _, err := comments.SubmitComment(ctx, thread, "u1", "Ann", "quick", 3); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("SubmitComment took %v while the publisher was blocked", elapsed)
	}

	close(pub.release)
	comments.events.flush()
	if events := pub.inner.recorded(); len(events) != 1 || events[0].Type != infraKafka.EventCommentCreated {
		t.Errorf("events = %+v", events)
	}
}
