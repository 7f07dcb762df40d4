package domain

import "testing"

func TestBlogLikeSet(t *testing.T) {
	b := Blog{Likes: []string{"u1", "u2"}}
	if b.LikeCount() != 2 {
		t.Fatalf("LikeCount = %d, want 2", b.LikeCount())
	}
	if !b.LikedBy("u1") || b.LikedBy("u3") {
		t.Fatal("LikedBy membership broken")
	}
}

func TestBlogVisibleTo(t *testing.T) {
	owner := &Identity{UserID: "u1", Role: RoleUser}
	other := &Identity{UserID: "u2", Role: RoleUser}
	admin := &Identity{UserID: "u3", Role: RoleAdmin}

	published := Blog{AuthorID: "u1", Status: BlogPublished}
	draft := Blog{AuthorID: "u1", Status: BlogDraft}

	if !published.VisibleTo(nil) || !published.VisibleTo(other) {
		t.Fatal("published post should be visible to everyone")
	}
	if draft.VisibleTo(nil) || draft.VisibleTo(other) {
		t.Fatal("draft should be hidden from anonymous and non-owner callers")
	}
	if !draft.VisibleTo(owner) || !draft.VisibleTo(admin) {
		t.Fatal("draft should be visible to its author and admins")
	}
}

func TestFindComment(t *testing.T) {
	b := Blog{Comments: []Comment{{ID: "c1", Text: "first"}, {ID: "c2", Text: "second"}}}
	if c := b.FindComment("c2"); c == nil || c.Text != "second" {
		t.Fatalf("FindComment(c2) = %+v", c)
	}
	if c := b.FindComment("missing"); c != nil {
		t.Fatalf("expected nil for unknown comment, got %+v", c)
	}
}
