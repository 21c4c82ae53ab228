package service

import (
	"context"

	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
)

// Join resolves a book by its join token and activates it for the user. A
// non-owner gets a shared grant created on first join; a grant the owner has
// disabled blocks activation with ErrAccessDisabled.
func (t *Tracker) Join(ctx context.Context, user *model.User, token string) (*model.Book, error) {
	book, err := t.repo.GetBookByUID(ctx, token, true)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	if book.UserID != user.ID {
		grant, err := t.repo.GetSharedBook(ctx, repository.SharedBookFilter{
			UserID:     &user.ID,
			BookID:     &book.ID,
			NotDeleted: true,
		})
		if err != nil {
			return nil, err
		}
		switch {
		case grant == nil:
			if _, err := t.repo.CreateSharedBook(ctx, user.ID, book.ID); err != nil {
				return nil, err
			}
		case grant.Disabled:
			return book, ErrAccessDisabled
		}
	}
	if err := t.SetActiveBook(ctx, user, book.ID); err != nil {
		return nil, err
	}
	return book, nil
}

// SharedBooks lists the user's live, enabled grants joined with their books.
func (t *Tracker) SharedBooks(ctx context.Context, userID int64) ([]model.SharedBook, error) {
	disabled := false
	return t.repo.GetSharedBooks(ctx, repository.SharedBookFilter{
		UserID:     &userID,
		Disabled:   &disabled,
		NotDeleted: true,
	})
}

// SharedBook fetches one live, enabled grant scoped to the user.
func (t *Tracker) SharedBook(ctx context.Context, userID, sharedID int64) (*model.SharedBook, error) {
	disabled := false
	return t.repo.GetSharedBook(ctx, repository.SharedBookFilter{
		ID:         &sharedID,
		UserID:     &userID,
		Disabled:   &disabled,
		NotDeleted: true,
	})
}

// Disconnect soft-deletes the user's grant and clears the active-book
// reference when it pointed at the disconnected book. No replacement is
// picked automatically.
func (t *Tracker) Disconnect(ctx context.Context, user *model.User, sharedID int64) (*model.SharedBook, error) {
	grant, err := t.SharedBook(ctx, user.ID, sharedID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, ErrNotFound
	}
	if err := t.repo.UpdateSharedBook(ctx, grant.ID, grant.Disabled, true); err != nil {
		return nil, err
	}
	if user.ActiveBookID == grant.BookID {
		if err := t.SetActiveBook(ctx, user, 0); err != nil {
			return nil, err
		}
	}
	return grant, nil
}

// Member is a grant on an owned book together with the member's display name.
type Member struct {
	model.SharedBook
	Name string
}

// BookMembers lists live grants on an owned book, for the owner's member
// management screen. Disabled grants are included so they can be re-enabled.
func (t *Tracker) BookMembers(ctx context.Context, ownerID, bookID int64) ([]Member, error) {
	book, err := t.OwnBook(ctx, ownerID, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	grants, err := t.repo.GetSharedBooks(ctx, repository.SharedBookFilter{
		BookID:     &book.ID,
		NotDeleted: true,
	})
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(grants))
	for _, grant := range grants {
		member := Member{SharedBook: grant}
		user, err := t.repo.GetUser(ctx, grant.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			member.Name = user.FullName
			if member.Name == "" {
				member.Name = user.Username
			}
		}
		members = append(members, member)
	}
	return members, nil
}

// SetMemberDisabled flips the disabled flag on a grant of an owned book.
// Disabling keeps the grant row so the member's history stays attributable.
func (t *Tracker) SetMemberDisabled(ctx context.Context, ownerID, bookID, sharedID int64, disabled bool) error {
	members, err := t.BookMembers(ctx, ownerID, bookID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if member.ID == sharedID {
			return t.repo.UpdateSharedBook(ctx, member.ID, disabled, false)
		}
	}
	return ErrNotFound
}
