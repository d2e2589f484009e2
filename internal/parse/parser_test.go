package parse

import (
	"context"
	"testing"
)

func TestNumberedList(t *testing.T) {
	items := NumberedList("1. A\n2. B\n3. C", 3)
	if len(items) != 3 || items[0] != "A" || items[1] != "B" || items[2] != "C" {
		t.Fatalf("NumberedList() = %v, want [A B C]", items)
	}
}

func TestNumberedListIgnoresProse(t *testing.T) {
	text := "Here are some suggestions:\n\n1) First option here\nA stray line.\n2. Second option here\n"
	items := NumberedList(text, 3)
	if len(items) != 2 {
		t.Fatalf("NumberedList() = %v, want 2 items", items)
	}
	if items[0] != "First option here" || items[1] != "Second option here" {
		t.Errorf("items = %v", items)
	}
}

func TestNumberedListNoMatches(t *testing.T) {
	if items := NumberedList("I cannot help with that request.", 3); len(items) != 0 {
		t.Fatalf("NumberedList() = %v, want empty", items)
	}
}

func TestSceneList(t *testing.T) {
	ctx := context.Background()
	text := "### Scene: The Arrival\nThe train pulls in at dusk.\n\n### Scene: The Letter\nShe finds the envelope under the door."

	scenes := SceneList(ctx, text)
	if len(scenes) != 2 {
		t.Fatalf("SceneList() = %d scenes, want 2", len(scenes))
	}
	if scenes[0].Title != "The Arrival" || scenes[1].Title != "The Letter" {
		t.Errorf("titles = %q, %q", scenes[0].Title, scenes[1].Title)
	}
	if scenes[0].Content != "The train pulls in at dusk." {
		t.Errorf("content = %q", scenes[0].Content)
	}
}

func TestSceneListMissingTitle(t *testing.T) {
	scenes := SceneList(context.Background(), "### Scene:\nSomething happens anyway.")
	if len(scenes) != 1 {
		t.Fatalf("SceneList() = %d scenes, want 1", len(scenes))
	}
	if scenes[0].Title != UntitledScene {
		t.Errorf("Title = %q, want placeholder", scenes[0].Title)
	}
}

func TestSceneListSkipsEmptyBlocks(t *testing.T) {
	text := "### Scene: Empty\n\n### Scene: Real\nActual content."
	scenes := SceneList(context.Background(), text)
	if len(scenes) != 1 || scenes[0].Title != "Real" {
		t.Fatalf("SceneList() = %+v, want only the non-empty block", scenes)
	}
}

func TestSceneListNumberedHeaders(t *testing.T) {
	text := "### Scene 1: Opening\nFirst beat.\n### Scene 2: Closing\nLast beat."
	scenes := SceneList(context.Background(), text)
	if len(scenes) != 2 || scenes[0].Title != "Opening" || scenes[1].Title != "Closing" {
		t.Fatalf("SceneList() = %+v", scenes)
	}
}

func TestSceneListNoHeaders(t *testing.T) {
	if scenes := SceneList(context.Background(), "Just a paragraph of prose."); len(scenes) != 0 {
		t.Fatalf("SceneList() = %+v, want empty", scenes)
	}
}

func TestTitledDraft(t *testing.T) {
	title, body := TitledDraft("Title: The Reckoning\nThe storm broke over the harbor.")
	if title != "The Reckoning" {
		t.Errorf("title = %q", title)
	}
	if body != "The storm broke over the harbor." {
		t.Errorf("body = %q", body)
	}
}

func TestTitledDraftNoTitleLine(t *testing.T) {
	title, body := TitledDraft("The storm broke over the harbor.")
	if title != UntitledScene {
		t.Errorf("title = %q, want placeholder", title)
	}
	if body != "The storm broke over the harbor." {
		t.Errorf("body = %q", body)
	}
}
