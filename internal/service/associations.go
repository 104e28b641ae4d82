package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
)

// Association names one of a video's reference lists.
type Association string

const (
	AssociationCategory   Association = "category"
	AssociationGenre      Association = "genre"
	AssociationCastMember Association = "cast_member"
)

// ParseAssociation accepts the association names used on the command line.
func ParseAssociation(value string) (Association, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "category", "categories":
		return AssociationCategory, nil
	case "genre", "genres":
		return AssociationGenre, nil
	case "cast", "cast_member", "cast-member", "cast_members":
		return AssociationCastMember, nil
	default:
		return "", fmt.Errorf("unknown association %q", value)
	}
}

type associationOps struct {
	add       func(*catalog.Video, uuid.UUID)
	remove    func(*catalog.Video, uuid.UUID)
	removeAll func(*catalog.Video)
	list      func(*catalog.Video) []uuid.UUID
}

var associationTable = map[Association]associationOps{
	AssociationCategory: {
		add:       (*catalog.Video).AddCategory,
		remove:    (*catalog.Video).RemoveCategory,
		removeAll: (*catalog.Video).RemoveAllCategories,
		list:      (*catalog.Video).Categories,
	},
	AssociationGenre: {
		add:       (*catalog.Video).AddGenre,
		remove:    (*catalog.Video).RemoveGenre,
		removeAll: (*catalog.Video).RemoveAllGenres,
		list:      (*catalog.Video).Genres,
	},
	AssociationCastMember: {
		add:       (*catalog.Video).AddCastMember,
		remove:    (*catalog.Video).RemoveCastMember,
		removeAll: (*catalog.Video).RemoveAllCastMembers,
		list:      (*catalog.Video).CastMembers,
	},
}

func opsFor(kind Association) (associationOps, error) {
	ops, ok := associationTable[kind]
	if !ok {
		return associationOps{}, fmt.Errorf("unknown association %q", kind)
	}
	return ops, nil
}

// IDs returns the referenced ids of the given association in insertion order.
func IDs(video *catalog.Video, kind Association) ([]uuid.UUID, error) {
	ops, err := opsFor(kind)
	if err != nil {
		return nil, err
	}
	return ops.list(video), nil
}
