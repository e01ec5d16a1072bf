package document

import (
	"testing"

	"lessonwiki-backend/internal/models"
)

func TestMergeZipsLanguages(t *testing.T) {
	en := Serialize(NewDoc(
		Heading(2, "Intro"),
		Paragraph("Hello world"),
	), "en")
	ar := Serialize(NewDoc(
		Heading(2, "مقدمة"),
		Paragraph("مرحبا بالعالم"),
	), "ar")

	merged, divergent := Merge(en, ar)
	if divergent {
		t.Fatal("equal-length lists must not be divergent")
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(merged))
	}

	if merged[0].En != "Intro" || merged[0].Ar != "مقدمة" {
		t.Fatalf("heading not merged: %+v", merged[0])
	}
	if merged[1].En != "Hello world" || merged[1].Ar != "مرحبا بالعالم" {
		t.Fatalf("paragraph not merged: %+v", merged[1])
	}
	if merged[1].JSONEn == nil || merged[1].JSONAr == nil {
		t.Fatal("both snapshots must survive the merge")
	}
}

func TestMergeLengthMismatchIsDivergent(t *testing.T) {
	en := []models.LessonBlock{
		{Type: models.BlockParagraph, En: "p1"},
		{Type: models.BlockParagraph, En: "p2"},
	}
	ar := []models.LessonBlock{
		{Type: models.BlockParagraph, Ar: "q1"},
	}

	merged, divergent := Merge(en, ar)
	if !divergent {
		t.Fatal("length mismatch must be flagged divergent")
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(merged))
	}
	if merged[0].En != "p1" || merged[0].Ar != "q1" {
		t.Fatalf("first pair not merged: %+v", merged[0])
	}
	if merged[1].En != "p2" || merged[1].Ar != "" {
		t.Fatalf("unpaired english block must pass through: %+v", merged[1])
	}
}

func TestMergeArabicWinsSharedFields(t *testing.T) {
	en := []models.LessonBlock{{Type: models.BlockHeading, En: "Title", Level: 2}}
	ar := []models.LessonBlock{{Type: models.BlockHeading, Ar: "عنوان", Level: 3}}

	merged, _ := Merge(en, ar)
	if merged[0].Level != 3 {
		t.Fatalf("arabic shared field should win, got level %d", merged[0].Level)
	}
}

func TestMergeEmptyBothSides(t *testing.T) {
	merged, divergent := Merge(nil, nil)
	if divergent {
		t.Fatal("two empty lists are not divergent")
	}
	if len(merged) != 0 {
		t.Fatalf("expected empty result, got %d blocks", len(merged))
	}
}
