// Seed tool: populates the database with demo users, groups, posts,
// comments, and follow edges for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plume-labs/plume/config"
	"github.com/plume-labs/plume/internal/model"
	"github.com/plume-labs/plume/internal/repository"
	"github.com/plume-labs/plume/pkg/database"
)

func main() {
	var (
		numUsers    int
		numGroups   int
		numPosts    int
		numComments int
		numFollows  int
	)
	flag.IntVar(&numUsers, "users", 20, "number of users")
	flag.IntVar(&numGroups, "groups", 5, "number of groups")
	flag.IntVar(&numPosts, "posts", 200, "number of posts")
	flag.IntVar(&numComments, "comments", 400, "number of comments")
	flag.IntVar(&numFollows, "follows", 60, "number of follow edges")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	ctx := context.Background()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)

	users := make([]model.User, numUsers)
	for i := range users {
		users[i] = model.User{
			ID:           uuid.New().String(),
			Username:     fmt.Sprintf("user%02d", i),
			Email:        fmt.Sprintf("user%02d@example.com", i),
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("seed users: %v", err)
	}

	groups := make([]model.Group, numGroups)
	for i := range groups {
		groups[i] = model.Group{
			ID:          uuid.New().String(),
			Title:       fmt.Sprintf("Group %d", i),
			Slug:        fmt.Sprintf("group-%d", i),
			Description: "seeded demo group",
		}
	}
	if err := db.Create(&groups).Error; err != nil {
		log.Fatalf("seed groups: %v", err)
	}

	base := time.Now().Add(-time.Duration(numPosts) * time.Minute)
	posts := make([]model.Post, numPosts)
	for i := range posts {
		posts[i] = model.Post{
			ID:       uuid.New().String(),
			Text:     fmt.Sprintf("demo post %d", i),
			PubDate:  base.Add(time.Duration(i) * time.Minute),
			AuthorID: users[r.Intn(numUsers)].ID,
		}
		// roughly two thirds of posts carry a group
		if r.Intn(3) > 0 {
			posts[i].GroupID = &groups[r.Intn(numGroups)].ID
		}
	}
	if err := db.Create(&posts).Error; err != nil {
		log.Fatalf("seed posts: %v", err)
	}

	comments := make([]model.Comment, numComments)
	for i := range comments {
		post := posts[r.Intn(numPosts)]
		comments[i] = model.Comment{
			ID:       uuid.New().String(),
			PostID:   post.ID,
			AuthorID: users[r.Intn(numUsers)].ID,
			Text:     fmt.Sprintf("demo comment %d", i),
			Created:  post.PubDate.Add(time.Duration(1+r.Intn(30)) * time.Minute),
		}
	}
	if err := db.Create(&comments).Error; err != nil {
		log.Fatalf("seed comments: %v", err)
	}

	followRepo := repository.NewFollowRepository(db)
	for i := 0; i < numFollows; i++ {
		from := users[r.Intn(numUsers)]
		to := users[r.Intn(numUsers)]
		if from.ID == to.ID {
			continue
		}
		if err := followRepo.Create(ctx, from.ID, to.ID); err != nil {
			log.Fatalf("seed follows: %v", err)
		}
	}

	log.Printf("seeded %d users, %d groups, %d posts, %d comments in %s",
		numUsers, numGroups, numPosts, numComments, time.Since(start).Truncate(time.Millisecond))
}
