package service

import (
	"context"
	"fmt"
	"strings"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/pkg/media/synthesia"
	"student-analyzer-be/pkg/prompt"
	"student-analyzer-be/pkg/store"
)

// levelVideo is the outcome of one difficulty tier
type levelVideo struct {
	Level     string
	Script    string
	Thumbnail string
	Video     *synthesia.Video
	Err       error
}

// GenerateVideo renders one video per difficulty tier, one tier after another.
// A tier that fails is reported in the result; the call fails only when every tier failed.
// Only a run where every tier succeeded is stored for reuse.
func (s *documentService) GenerateVideo(ctx context.Context, email string) (*dto.ContentResponse, error) {
	if s.videos == nil {
		return nil, serverutils.Wrap(serverutils.ErrUnavailable, ErrVideoNotConfigured)
	}
	session, err := s.open(email, store.ViewVideoGeneration)
	if err != nil {
		return nil, err
	}
	if _, ok := s.stateManager.Artifact(session, store.ViewVideoGeneration); ok {
		return s.content(ctx, session, store.ViewVideoGeneration)
	}

	snap := s.stateManager.Snapshot(session)
	results := make([]levelVideo, 0, len(prompt.Levels))
	failed := 0
	for _, level := range prompt.Levels {
		res := s.generateLevel(ctx, level, snap.DocumentName, snap.DocumentText)
		if res.Err != nil {
			failed++
			s.logger.Error("DOCUMENT", "Video tier failed", map[string]interface{}{
				"user":  email,
				"level": level,
				"error": res.Err.Error(),
			})
		}
		results = append(results, res)
	}
	if failed == len(results) {
		return nil, serverutils.Wrap(serverutils.ErrUpstream, fmt.Errorf("video generation failed: %w", results[0].Err))
	}

	markdown := videoMarkdown(snap.DocumentName, results)
	if failed > 0 {
		// Partial results are shown but not kept, so the next request retries every tier
		s.publishCounter(ctx, email, entity.CounterVideosGenerated)
		return &dto.ContentResponse{
			View:     store.ViewVideoGeneration,
			Content:  s.translator.Translate(ctx, markdown, snap.Language),
			Language: snap.Language,
		}, nil
	}

	if s.stateManager.StoreArtifact(session, store.ViewVideoGeneration, markdown) {
		s.publishCounter(ctx, email, entity.CounterVideosGenerated)
	}
	return s.content(ctx, session, store.ViewVideoGeneration)
}

func (s *documentService) generateLevel(ctx context.Context, level, documentName, documentText string) levelVideo {
	res := levelVideo{Level: level}

	p, err := s.prompts.LevelVideoScript(level, documentText, s.options.ScriptMaxWords)
	if err != nil {
		res.Err = err
		return res
	}
	script, err := s.generate(ctx, "video script "+strings.ToLower(level), p)
	if err != nil {
		res.Err = err
		return res
	}
	res.Script = script

	// A missing thumbnail does not block the video
	if s.thumbnails != nil {
		if tp, err := s.prompts.Thumbnail(level, documentName); err == nil {
			if url, err := s.thumbnails.Thumbnail(ctx, tp); err == nil {
				res.Thumbnail = url
			} else {
				s.logger.Warn("DOCUMENT", "Thumbnail failed", map[string]interface{}{
					"level": level,
					"error": err.Error(),
				})
			}
		}
	}

	title := fmt.Sprintf("%s - %s Level", documentName, level)
	created, err := s.videos.CreateVideo(ctx, synthesia.NewScriptRequest(title, script, s.options.VideoTestMode))
	if err != nil {
		res.Err = err
		return res
	}
	video, err := s.videos.WaitForVideo(ctx, created.ID)
	if video != nil {
		res.Video = video
	} else {
		res.Video = created
	}
	res.Err = err
	return res
}

func videoMarkdown(documentName string, results []levelVideo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Video Lessons: %s\n\n", documentName)
	for _, r := range results {
		fmt.Fprintf(&b, "## %s Level\n\n", r.Level)
		if r.Thumbnail != "" {
			fmt.Fprintf(&b, "![%s level thumbnail](%s)\n\n", r.Level, r.Thumbnail)
		}
		switch {
		case r.Video != nil && r.Video.Status == synthesia.StatusComplete:
			fmt.Fprintf(&b, "**Video:** [Watch the %s lesson](%s)\n\n", strings.ToLower(r.Level), r.Video.Download)
		case r.Video != nil:
			fmt.Fprintf(&b, "**Video:** %s (id %s)\n\n", r.Video.Status, r.Video.ID)
		case r.Err != nil:
			b.WriteString("**Video:** not available\n\n")
		}
		if r.Script != "" {
			fmt.Fprintf(&b, "### Script\n\n%s\n\n", strings.TrimSpace(r.Script))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
