package index

import "testing"

func TestIdempotentCategoryAdd(t *testing.T) {
	o := NewOrg()
	o.Add("m1", []string{"cat"}, "")
	o.Add("m1", []string{"cat"}, "")

	ids := o.ByCategory("cat")
	if len(ids) != 1 || ids[0] != "m1" {
		t.Errorf("expected exactly one m1, got %v", ids)
	}
}

func TestMultipleCategories(t *testing.T) {
	o := NewOrg()
	o.Add("m1", []string{"a", "b", ""}, "")

	if ids := o.ByCategory("a"); len(ids) != 1 {
		t.Errorf("category a: %v", ids)
	}
	if ids := o.ByCategory("b"); len(ids) != 1 {
		t.Errorf("category b: %v", ids)
	}
	if ids := o.ByCategory(""); len(ids) != 0 {
		t.Errorf("empty category name should be ignored: %v", ids)
	}
}

func TestUnknownNamesReturnEmpty(t *testing.T) {
	o := NewOrg()
	if ids := o.ByCategory("nope"); ids == nil || len(ids) != 0 {
		t.Errorf("expected empty slice, got %v", ids)
	}
	if ids := o.ByHierarchy("nope"); ids == nil || len(ids) != 0 {
		t.Errorf("expected empty slice, got %v", ids)
	}
}

func TestHierarchyOrderAndDedup(t *testing.T) {
	o := NewOrg()
	o.Add("m2", nil, "pipeline")
	o.Add("m1", nil, "pipeline")
	o.Add("m2", nil, "pipeline") // duplicate append prevented

	ids := o.ByHierarchy("pipeline")
	if len(ids) != 2 || ids[0] != "m2" || ids[1] != "m1" {
		t.Errorf("expected insertion order [m2 m1], got %v", ids)
	}
}

func TestByCategorySorted(t *testing.T) {
	o := NewOrg()
	o.Add("z", []string{"cat"}, "")
	o.Add("a", []string{"cat"}, "")

	ids := o.ByCategory("cat")
	if len(ids) != 2 || ids[0] != "a" {
		t.Errorf("expected sorted ids, got %v", ids)
	}
}

func TestNames(t *testing.T) {
	o := NewOrg()
	o.Add("m1", []string{"b", "a"}, "h1")

	cats := o.Categories()
	if len(cats) != 2 || cats[0] != "a" || cats[1] != "b" {
		t.Errorf("categories: %v", cats)
	}
	hiers := o.Hierarchies()
	if len(hiers) != 1 || hiers[0] != "h1" {
		t.Errorf("hierarchies: %v", hiers)
	}
}

func TestEmptyIDIgnored(t *testing.T) {
	o := NewOrg()
	o.Add("", []string{"cat"}, "h")
	if len(o.ByCategory("cat")) != 0 || len(o.ByHierarchy("h")) != 0 {
		t.Error("empty id should not be indexed")
	}
}
