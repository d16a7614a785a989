package content

import (
	"errors"
	"testing"
)

func TestMakeKeyPacksColumnAndProperty(t *testing.T) {
	k := MakeKey(3, PropFontColor)
	if k != Key(3<<16|uint32(PropFontColor)) {
		t.Errorf("MakeKey = %#x", uint32(k))
	}
	if k.Column() != 3 || k.Property() != PropFontColor {
		t.Errorf("Column()/Property() = %d/%v", k.Column(), k.Property())
	}
}

func TestStoreGetSet(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("Amount", PropValue, Int(42)); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	v, ok := s.Get("Amount", PropValue)
	if !ok {
		t.Fatal("expected entry for Amount")
	}
	if i, _ := v.AsInt(); i != 42 {
		t.Errorf("Get() = %v, want 42", v)
	}
}

func TestStoreColumnNamesFolded(t *testing.T) {
	s := NewStore(nil)
	_ = s.Set("  Amount ", PropValue, String("x"))
	for _, name := range []string{"amount", "AMOUNT", "Amount"} {
		if !s.Has(name, PropValue) {
			t.Errorf("Has(%q) = false, want true", name)
		}
	}
	if s.Columns().Len() != 1 {
		t.Errorf("Columns().Len() = %d, want 1", s.Columns().Len())
	}
}

func TestStoreExactColumns(t *testing.T) {
	cols := NewColumns()
	if err := cols.SetExact(true); err != nil {
		t.Fatalf("SetExact() = %v", err)
	}
	s := NewStore(cols)
	_ = s.Set("Amount", PropValue, Int(1))
	if s.Has("amount", PropValue) {
		t.Error("exact registry must not fold case")
	}
	if err := cols.SetExact(false); !errors.Is(err, ErrColumnsLocked) {
		t.Errorf("SetExact after allocation = %v, want ErrColumnsLocked", err)
	}
}

func TestStoreReadNeverAllocates(t *testing.T) {
	s := NewStore(nil)
	if _, ok := s.Get("ghost", PropValue); ok {
		t.Error("unknown column should be absent")
	}
	_ = s.Set("ghost", PropValue, Absent())
	if s.Columns().Len() != 0 {
		t.Errorf("reads and removals allocated %d column ids", s.Columns().Len())
	}
}

func TestStoreSetAbsentRemovesNullKeeps(t *testing.T) {
	s := NewStore(nil)
	_ = s.Set("", PropCaption, String("hi"))
	_ = s.Set("", PropCaption, Null())
	v, ok := s.Get("", PropCaption)
	if !ok || !v.IsNull() {
		t.Fatalf("Get() = %v, %v; want stored null", v, ok)
	}
	_ = s.Set("", PropCaption, Absent())
	if s.Has("", PropCaption) {
		t.Error("setting absent should remove the entry")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStoreAllSorted(t *testing.T) {
	s := NewStore(nil)
	_ = s.Set("b", PropValue, Int(2))
	_ = s.Set("a", PropValue, Int(1))
	_ = s.Set("", PropCaption, String("c"))

	var prev Key
	n := 0
	for k := range s.All() {
		if n > 0 && k <= prev {
			t.Errorf("keys not ascending: %#x after %#x", k, prev)
		}
		prev = k
		n++
	}
	if n != 3 {
		t.Errorf("All() yielded %d entries, want 3", n)
	}
}

func TestColumnsName(t *testing.T) {
	c := NewColumns()
	id, err := c.Allocate("Price")
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := c.Name(id); !ok || name != "price" {
		t.Errorf("Name(%d) = %q, %v", id, name, ok)
	}
	if _, ok := c.Name(NoColumn); ok {
		t.Error("NoColumn has no name")
	}
}

func TestParseProperty(t *testing.T) {
	for id := PropValue; id <= PropTabIndex; id++ {
		got, ok := ParseProperty(id.String())
		if !ok || got != id {
			t.Errorf("ParseProperty(%q) = %v, %v, want %v", id.String(), got, ok, id)
		}
	}
	if _, ok := ParseProperty("nope"); ok {
		t.Error("ParseProperty(nope) = true")
	}
}
