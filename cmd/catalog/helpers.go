package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
)

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid video id %q: %w", value, err)
	}
	return id, nil
}

func parseRef(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid reference id %q: %w", value, err)
	}
	return id, nil
}

func ratingUsage() string {
	names := make([]string, 0, len(catalog.AllRatings()))
	for _, r := range catalog.AllRatings() {
		names = append(names, r.String())
	}
	return "Content rating (" + strings.Join(names, ", ") + ")"
}
