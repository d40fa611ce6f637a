package card

import (
	"reflect"
	"testing"
)

func TestBuildIsDeterministic(t *testing.T) {
	p := Properties{
		Title:            "Hello World",
		Metadata:         []Field{{"An article by", "Benjamin Tan"}, {"Published on", "January 1, 2023"}},
		TitleFontSize:    100,
		SubtitleFontSize: 40,
	}
	a := Build(p)
	b := Build(p)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Build returned different trees for the same input")
	}
}

func TestBuildSubtitle(t *testing.T) {
	root := Build(Properties{Title: "ofcrse", Subtitle: "By Benjamin Tan", TitleFontSize: 200, SubtitleFontSize: 70})

	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	if got := root.Style["justifyContent"]; got != "flex-end" {
		t.Errorf("justifyContent = %v, want flex-end", got)
	}
	if got := root.Style["backgroundColor"]; got != Background {
		t.Errorf("backgroundColor = %v, want %v", got, Background)
	}

	title := root.Children[0]
	if !title.IsText() || title.Text != "ofcrse" {
		t.Errorf("title = %+v, want text leaf %q", title, "ofcrse")
	}
	if got := title.Style["fontSize"]; got != 200.0 {
		t.Errorf("title fontSize = %v, want 200", got)
	}
	if got := title.Style["whiteSpace"]; got != "pre" {
		t.Errorf("title whiteSpace = %v, want pre", got)
	}
	if got := title.Style["letterSpacing"]; got != -2 {
		t.Errorf("title letterSpacing = %v, want -2", got)
	}

	sub := root.Children[1]
	if !sub.IsText() || sub.Text != "By Benjamin Tan" {
		t.Errorf("subtitle = %+v, want text leaf", sub)
	}
	if got := sub.Style["fontSize"]; got != 70.0 {
		t.Errorf("subtitle fontSize = %v, want 70", got)
	}
}

func TestBuildMetadataRow(t *testing.T) {
	fields := []Field{
		{"An article by", "Benjamin Tan"},
		{"Status", "Draft"},
		{"Last updated", "March 4, 2023"},
	}
	root := Build(Properties{Title: "T", Metadata: fields, TitleFontSize: 100, SubtitleFontSize: 40})

	row := root.Children[1]
	if got := row.Style["flexDirection"]; got != "row" {
		t.Fatalf("row flexDirection = %v, want row", got)
	}
	if len(row.Children) != len(fields) {
		t.Fatalf("row cells = %d, want %d", len(row.Children), len(fields))
	}
	for i, cell := range row.Children {
		if len(cell.Children) != 2 {
			t.Fatalf("cell %d children = %d, want 2", i, len(cell.Children))
		}
		label, value := cell.Children[0], cell.Children[1]
		if label.Text != fields[i].Name {
			t.Errorf("cell %d label = %q, want %q", i, label.Text, fields[i].Name)
		}
		if label.Style["textTransform"] != "uppercase" {
			t.Errorf("cell %d label is not uppercased", i)
		}
		if value.Text != fields[i].Value {
			t.Errorf("cell %d value = %q, want %q", i, value.Text, fields[i].Value)
		}
		if got := value.Style["fontSize"]; got != 40.0 {
			t.Errorf("cell %d value fontSize = %v, want 40", i, got)
		}
	}
}

func TestEmptyMetadataStillUsesRow(t *testing.T) {
	root := Build(Properties{Title: "T", Metadata: []Field{}, Subtitle: "ignored"})
	if got := root.Children[1].Style["flexDirection"]; got != "row" {
		t.Errorf("flexDirection = %v, want row", got)
	}
}
