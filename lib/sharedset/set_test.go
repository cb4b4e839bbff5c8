// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sharedset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmptySet(t *testing.T) {
	var s Set[string]
	if !s.IsEmpty() {
		t.Fatal("zero Set is not empty")
	}
	if got := s.Leaves(); got != nil {
		t.Errorf("Leaves() = %v, want nil", got)
	}
	if got := s.Children(); got != nil {
		t.Errorf("Children() = %v, want nil", got)
	}
	if got := s.ToList(); got != nil {
		t.Errorf("ToList() = %v, want nil", got)
	}
	if s.Node() != (Node{}) {
		t.Error("empty set Node() is not the zero token")
	}
	if s.Order() != OrderStable {
		t.Errorf("empty set Order() = %v, want stable", s.Order())
	}
}

func TestBuildEmpty(t *testing.T) {
	s := NewBuilder[int](OrderStable).Build()
	if !s.IsEmpty() {
		t.Fatal("Build with no additions produced a non-empty set")
	}
}

func TestLeafValueDeduplication(t *testing.T) {
	b := NewBuilder[string](OrderStable)
	b.AddAll("a", "b", "a", "c", "b")
	s := b.Build()
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, s.Leaves()); diff != "" {
		t.Errorf("Leaves() mismatch (-want +got):\n%s", diff)
	}
}

func TestChildIdentityDeduplication(t *testing.T) {
	child := FromLeaves(OrderStable, "x")
	b := NewBuilder[string](OrderStable)
	b.Add("a")
	b.AddSet(child)
	b.AddSet(child)
	s := b.Build()
	if got := len(s.Children()); got != 1 {
		t.Fatalf("len(Children()) = %d, want 1", got)
	}
}

func TestValueEqualChildrenAreDistinct(t *testing.T) {
	first := FromLeaves(OrderStable, "x")
	second := FromLeaves(OrderStable, "x")
	if first.Node() == second.Node() {
		t.Fatal("separately built sets share a Node token")
	}
	b := NewBuilder[string](OrderStable)
	b.Add("a")
	b.AddSet(first)
	b.AddSet(second)
	if got := len(b.Build().Children()); got != 2 {
		t.Errorf("len(Children()) = %d, want 2", got)
	}
}

func TestEmptyChildSkipped(t *testing.T) {
	b := NewBuilder[string](OrderStable)
	b.Add("a")
	b.AddSet(Set[string]{})
	s := b.Build()
	if got := len(s.Children()); got != 0 {
		t.Errorf("len(Children()) = %d, want 0", got)
	}
}

func TestSingleChildCollapse(t *testing.T) {
	child := FromLeaves(OrderStable, "x", "y")
	b := NewBuilder[string](OrderStable)
	b.AddSet(child)
	s := b.Build()
	if s.Node() != child.Node() {
		t.Fatal("build with only one child did not return the child's identity")
	}
}

func TestSingleChildWithLeavesDoesNotCollapse(t *testing.T) {
	child := FromLeaves(OrderStable, "x")
	b := NewBuilder[string](OrderStable)
	b.Add("a")
	b.AddSet(child)
	s := b.Build()
	if s.Node() == child.Node() {
		t.Fatal("build with a direct leaf collapsed into its child")
	}
}

func TestOrderMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AddSet with mismatched order did not panic")
		}
	}()
	b := NewBuilder[string](OrderStable)
	b.AddSet(FromLeaves(OrderUnordered, "x"))
}

func TestOrderMismatchEmptySetAllowed(t *testing.T) {
	b := NewBuilder[string](OrderStable)
	b.AddSet(NewBuilder[string](OrderUnordered).Build())
	if got := len(b.Build().Children()); got != 0 {
		t.Errorf("len(Children()) = %d, want 0", got)
	}
}

func TestStructuralSharing(t *testing.T) {
	shared := FromLeaves(OrderStable, "common")

	left := NewBuilder[string](OrderStable)
	left.Add("l")
	left.AddSet(shared)

	right := NewBuilder[string](OrderStable)
	right.Add("r")
	right.AddSet(shared)

	leftChild := left.Build().Children()[0]
	rightChild := right.Build().Children()[0]
	if leftChild.Node() != rightChild.Node() {
		t.Fatal("shared child has different identities under two parents")
	}
}

func TestToListDiamond(t *testing.T) {
	base := FromLeaves(OrderStable, "base")

	left := NewBuilder[string](OrderStable)
	left.Add("left")
	left.AddSet(base)

	right := NewBuilder[string](OrderStable)
	right.Add("right")
	right.AddSet(base)

	top := NewBuilder[string](OrderStable)
	top.Add("top")
	top.AddSet(left.Build())
	top.AddSet(right.Build())

	built := top.Build()
	want := []string{"top", "left", "base", "right"}
	if diff := cmp.Diff(want, built.ToList()); diff != "" {
		t.Errorf("ToList() mismatch (-want +got):\n%s", diff)
	}
	if got := built.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestToListDropsDuplicateValuesAcrossNodes(t *testing.T) {
	child := FromLeaves(OrderStable, "dup", "only-child")
	b := NewBuilder[string](OrderStable)
	b.AddAll("dup", "only-parent")
	b.AddSet(child)
	want := []string{"dup", "only-parent", "only-child"}
	if diff := cmp.Diff(want, b.Build().ToList()); diff != "" {
		t.Errorf("ToList() mismatch (-want +got):\n%s", diff)
	}
}

func TestLeavesReturnsCopy(t *testing.T) {
	s := FromLeaves(OrderStable, "a", "b")
	leaves := s.Leaves()
	leaves[0] = "mutated"
	if got := s.Leaves()[0]; got != "a" {
		t.Errorf("set leaf changed to %q after mutating the returned slice", got)
	}
}

func TestBuilderReusableAfterBuild(t *testing.T) {
	b := NewBuilder[string](OrderStable)
	b.Add("a")
	first := b.Build()
	b.Add("b")
	second := b.Build()

	if diff := cmp.Diff([]string{"a"}, first.Leaves()); diff != "" {
		t.Errorf("first build changed after later Add (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, second.Leaves()); diff != "" {
		t.Errorf("second build mismatch (-want +got):\n%s", diff)
	}
	if first.Node() == second.Node() {
		t.Error("two builds share one identity")
	}
}

func TestUnion(t *testing.T) {
	a := FromLeaves(OrderStable, "a")
	c := FromLeaves(OrderStable, "c")

	u := Union(OrderStable, a, Set[string]{}, c)
	if got := len(u.Children()); got != 2 {
		t.Fatalf("len(Children()) = %d, want 2", got)
	}
	if diff := cmp.Diff([]string{"a", "c"}, u.ToList()); diff != "" {
		t.Errorf("ToList() mismatch (-want +got):\n%s", diff)
	}

	single := Union(OrderStable, a)
	if single.Node() != a.Node() {
		t.Error("union of one set did not preserve its identity")
	}
}

func TestNodeAsMapKey(t *testing.T) {
	a := FromLeaves(OrderStable, "a")
	b := FromLeaves(OrderStable, "b")
	seen := map[Node]string{
		a.Node(): "a",
		b.Node(): "b",
	}
	if len(seen) != 2 {
		t.Fatalf("len(seen) = %d, want 2", len(seen))
	}
	if seen[a.Node()] != "a" || seen[b.Node()] != "b" {
		t.Error("Node tokens did not round-trip through a map")
	}
}

func TestOrderString(t *testing.T) {
	if got := OrderStable.String(); got != "stable" {
		t.Errorf("OrderStable.String() = %q, want %q", got, "stable")
	}
	if got := OrderUnordered.String(); got != "unordered" {
		t.Errorf("OrderUnordered.String() = %q, want %q", got, "unordered")
	}
	if got := Order(9).String(); got != "invalid" {
		t.Errorf("Order(9).String() = %q, want %q", got, "invalid")
	}
}
