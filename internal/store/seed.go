package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/animes2u/catalog-server/internal/auth"
	"github.com/animes2u/catalog-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// EnsureAdminUser creates the bootstrap admin account if no user with the
// given username exists. Returns true if the account was created.
func (s *Store) EnsureAdminUser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, fmt.Errorf("check admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("bootstrap admin created", "username", username)
	}

	return true, nil
}

// SeedDemoCatalog loads the sample catalog if the anime collection is empty.
// Creation dates are spread over the preceding two weeks and view counters
// start at a random value so the trending and recent rails have something to
// show on a fresh instance. Returns the number of entries inserted.
func (s *Store) SeedDemoCatalog(ctx context.Context) (int, error) {
	existing, err := s.ListAnime(ctx)
	if err != nil {
		return 0, fmt.Errorf("check catalog empty: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	drafts := demoCatalog()
	now := time.Now().UTC()

	for i, draft := range drafts {
		anime, err := s.CreateAnime(ctx, draft)
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", draft.Title, err)
		}

		// Backdate and pre-populate views directly; these are seed-only
		// adjustments to server-managed fields.
		anime.CreatedAt = now.AddDate(0, 0, -((len(drafts) - i) % len(drafts)))
		anime.Views = rand.Int63n(1000)

		if err := s.rewriteAnime(anime); err != nil {
			return i, fmt.Errorf("backdate %q: %w", draft.Title, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("demo catalog seeded", "titles", len(drafts))
	}

	return len(drafts), nil
}

// rewriteAnime overwrites an existing record in place, bypassing the patch
// path. Used only by seeding.
func (s *Store) rewriteAnime(anime *domain.Anime) error {
	data, err := json.Marshal(anime)
	if err != nil {
		return fmt.Errorf("marshal anime: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(animeKey(anime.ID), data)
	})
}

func demoCatalog() []*domain.AnimeDraft {
	return []*domain.AnimeDraft{
		{
			Title:         "Demon Slayer",
			Description:   "A young boy becomes a demon slayer after his family is slaughtered and his sister is turned into a demon.",
			PosterURL:     "https://images.unsplash.com/photo-1578632767115-351597cf2477?w=500&h=700",
			Genres:        []string{"Action", "Fantasy"},
			Episodes:      26,
			Language:      domain.LanguageSub,
			Status:        domain.StatusOngoing,
			TelegramURL:   "https://t.me/demonslayer",
			IsRecommended: true,
		},
		{
			Title:         "My Hero Academia",
			Description:   "In a world where people with superpowers are the norm, a boy without powers dreams to become a superhero.",
			PosterURL:     "https://images.unsplash.com/photo-1560972550-aba3456b5564?w=500&h=700",
			Genres:        []string{"Action", "Superhero"},
			Episodes:      113,
			Language:      domain.LanguageDub,
			Status:        domain.StatusOngoing,
			TelegramURL:   "https://t.me/myhero",
			IsRecommended: true,
		},
		{
			Title:         "Attack on Titan",
			Description:   "Humanity lives behind walls, protected from giant humanoid Titans that devour humans seemingly without reason.",
			PosterURL:     "https://images.unsplash.com/photo-1541562232579-512a21360020?w=500&h=700",
			Genres:        []string{"Action", "Drama"},
			Episodes:      87,
			Language:      domain.LanguageSub,
			Status:        domain.StatusCompleted,
			TelegramURL:   "https://t.me/attackontitan",
			IsRecommended: true,
		},
		{
			Title:         "One Piece",
			Description:   "Monkey D. Luffy and his pirate crew explore the Grand Line in search of the world's ultimate treasure known as the One Piece.",
			PosterURL:     "https://images.unsplash.com/photo-1607604276583-eef5d076aa5f?w=500&h=700",
			Genres:        []string{"Adventure", "Fantasy"},
			Episodes:      1064,
			Language:      domain.LanguageBoth,
			Status:        domain.StatusOngoing,
			TelegramURL:   "https://t.me/onepiece",
			IsRecommended: true,
		},
		{
			Title:       "Jujutsu Kaisen",
			Description: "A boy swallows a cursed talisman and becomes cursed himself. He enters a shaman's school to locate the demon's other body parts and exorcise himself.",
			PosterURL:   "https://images.unsplash.com/photo-1601850494422-3cf14624b0b3?w=500&h=700",
			Genres:      []string{"Action", "Supernatural"},
			Episodes:    24,
			Language:    domain.LanguageSub,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/jujutsukaisen",
		},
		{
			Title:       "Spy x Family",
			Description: "A spy on an undercover mission gets married and adopts a child as part of his cover. His wife and daughter have secrets of their own.",
			PosterURL:   "https://images.unsplash.com/photo-1581833971358-2c8b550f87b3?w=500&h=700",
			Genres:      []string{"Comedy", "Action"},
			Episodes:    25,
			Language:    domain.LanguageBoth,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/spyxfamily",
		},
		{
			Title:       "Tokyo Revengers",
			Description: "A middle-aged loser travels back in time to his school days and must save his ex-girlfriend from being killed by a gang.",
			PosterURL:   "https://images.unsplash.com/photo-1580477667995-2b94f01c9516?w=500&h=700",
			Genres:      []string{"Action", "Drama"},
			Episodes:    24,
			Language:    domain.LanguageSub,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/tokyorevengers",
		},
		{
			Title:       "Chainsaw Man",
			Description: "A young man desperate to clear his father's debt makes a contract with the Chainsaw Devil to become a devil hunter.",
			PosterURL:   "https://images.unsplash.com/photo-1613376023733-0a73315d9b06?w=500&h=700",
			Genres:      []string{"Action", "Horror"},
			Episodes:    12,
			Language:    domain.LanguageSub,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/chainsawman",
		},
		{
			Title:       "Bleach: Thousand-Year Blood War",
			Description: "The peace is suddenly broken when warning sirens blare through the Soul Society. Residents are disappearing without a trace.",
			PosterURL:   "https://images.unsplash.com/photo-1614583225154-5fcdda07019e?w=500&h=700",
			Genres:      []string{"Action", "Supernatural"},
			Episodes:    13,
			Language:    domain.LanguageSub,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/bleach",
		},
		{
			Title:       "Blue Lock",
			Description: "To revitalize Japan's football, a project named Blue Lock was created to recruit and gather 300 talented strikers from high schools all over Japan.",
			PosterURL:   "https://images.unsplash.com/photo-1593085512500-5d55148d6f0d?w=500&h=700",
			Genres:      []string{"Sports", "Drama"},
			Episodes:    24,
			Language:    domain.LanguageBoth,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/bluelock",
		},
		{
			Title:       "Oshi no Ko",
			Description: "A doctor and a devoted fan of a pop idol ends up reincarnated as the idol's child, resulting in a dark tale of fame and the idol industry.",
			PosterURL:   "https://images.unsplash.com/photo-1612036782180-6f0b6cd846fe?w=500&h=700",
			Genres:      []string{"Drama", "Supernatural"},
			Episodes:    11,
			Language:    domain.LanguageSub,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/oshinoko",
		},
		{
			Title:       "Vinland Saga S2",
			Description: "Thorfinn pursues a journey with his father's killer in order to take revenge and end his life in a duel.",
			PosterURL:   "https://images.unsplash.com/photo-1580130732478-4e339fb6836f?w=500&h=700",
			Genres:      []string{"Action", "Adventure", "Historical"},
			Episodes:    24,
			Language:    domain.LanguageSub,
			Status:      domain.StatusCompleted,
			TelegramURL: "https://t.me/vinlandsaga",
		},
		{
			Title:       "Dr. Stone: New World",
			Description: "A scientist awakens thousands of years after humanity was petrified and starts rebuilding civilization from the stone age.",
			PosterURL:   "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=500&h=700",
			Genres:      []string{"Sci-Fi", "Adventure"},
			Episodes:    11,
			Language:    domain.LanguageBoth,
			Status:      domain.StatusOngoing,
			TelegramURL: "https://t.me/drstone",
		},
		{
			Title:       "One Punch Man",
			Description: "The story of Saitama, a superhero who can defeat any opponent with a single punch but seeks a worthy opponent after growing bored.",
			PosterURL:   "https://images.unsplash.com/photo-1576086213369-97a306d36557?w=500&h=700",
			Genres:      []string{"Action", "Comedy"},
			Episodes:    24,
			Language:    domain.LanguageBoth,
			Status:      domain.StatusCompleted,
			TelegramURL: "https://t.me/onepunchman",
		},
		{
			Title:       "Naruto Shippuden",
			Description: "Naruto Uzumaki returns after two and a half years of training and continues his quest to become the greatest ninja.",
			PosterURL:   "https://images.unsplash.com/photo-1578632292335-df3abbb0d586?w=500&h=700",
			Genres:      []string{"Action", "Adventure"},
			Episodes:    500,
			Language:    domain.LanguageBoth,
			Status:      domain.StatusCompleted,
			TelegramURL: "https://t.me/narutoshippuden",
		},
	}
}
