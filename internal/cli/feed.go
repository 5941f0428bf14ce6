package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/models"
)

const timeLayout = "Jan 2, 2006 15:04"

func (a *App) Feed(_ context.Context, _ []string) error {
	posts := a.content.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(a.out, "\n[%s] %s\n", p.ID, p.Title)
		fmt.Fprintf(a.out, "    by %s on %s | %d likes | %d replies\n", p.AuthorName, p.CreatedAt.Local().Format(timeLayout), p.LikeCount, len(p.Replies))
		for _, line := range strings.Split(p.Content, "\n") {
			fmt.Fprintf(a.out, "    %s\n", line)
		}
		for _, r := range p.Replies {
			fmt.Fprintf(a.out, "      > %s (%s): %s\n", r.AuthorName, r.CreatedAt.Local().Format(timeLayout), r.Content)
		}
	}
	return nil
}

// Post publishes a new post as the current user.
func (a *App) Post(ctx context.Context, _ []string) error {
	p, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	form := PostForm{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if err := validateForm(a.validate, form); err != nil {
		return err
	}

	post, err := a.content.AddPost(ctx, p.ID, p.Name, form.Title, form.Content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted [%s].\n", post.ID)
	return nil
}

// Reply adds a reply to the post named in args (or asked for).
func (a *App) Reply(ctx context.Context, args []string) error {
	p, ok := a.sessions.Current()
	if !ok {
		return common.ErrNoSession
	}

	post, err := a.targetPost(args)
	if err != nil {
		return err
	}

	content, err := a.ask(fmt.Sprintf("Reply to %q", post.Title))
	if err != nil {
		return err
	}
	form := ReplyForm{Content: strings.TrimSpace(content)}
	if err := validateForm(a.validate, form); err != nil {
		return err
	}

	if err := a.content.AddReply(ctx, post.ID, p.ID, p.Name, form.Content); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reply added.")
	return nil
}

// Like does not require a session.
func (a *App) Like(ctx context.Context, args []string) error {
	post, err := a.targetPost(args)
	if err != nil {
		return err
	}
	if err := a.content.LikePost(ctx, post.ID); err != nil {
		return err
	}

	if updated, err := a.content.Post(post.ID); err == nil {
		fmt.Fprintf(a.out, "Liked %q (%d likes).\n", updated.Title, updated.LikeCount)
	}
	return nil
}

func (a *App) targetPost(args []string) (models.CommunityPost, error) {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		if id, err = a.ask("Post id"); err != nil {
			return models.CommunityPost{}, err
		}
	}

	post, err := a.content.Post(id)
	if errors.Is(err, common.ErrNotFound) {
		return models.CommunityPost{}, fmt.Errorf("no post with id %q", id)
	}
	return post, err
}
