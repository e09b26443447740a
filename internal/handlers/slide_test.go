// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"slideforge/internal/models"
)

// seedSlide creates a project with one persisted slide for slide-level
// handler tests.
func seedSlide(t *testing.T, env *testEnv, inputURL string) (*models.Project, *models.Slide) {
	t.Helper()

	cleanProjects(t, env.DB, inputURL)
	t.Cleanup(func() { cleanProjects(t, env.DB, inputURL) })

	p, err := env.Projects.Create(uuid.New(), inputURL)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	inserted, err := env.Slides.ReplaceForProject(p.ID, []models.Slide{{
		Order:          1,
		Purpose:        models.PurposeBenefit,
		Message:        "通勤15分がレッスンに変わる",
		SubMessage:     "毎日続くから身につく",
		AdditionalText: []string{"継続率90%"},
	}})
	if err != nil {
		t.Fatalf("seed slide: %v", err)
	}
	return p, &inserted[0]
}

func TestUpdateSlideFields(t *testing.T) {
	env := newTestEnv(t)
	_, sl := seedSlide(t, env, "https://example.com/handler-slide-update")

	id := sl.ID.String()
	var got models.Slide
	do(t, env.H.UpdateSlide,
		withChiURLParam(jsonRequest(t, http.MethodPut, "/api/slides/"+id, map[string]any{
			"message":        "新しい見出し",
			"exclude_person": true,
		}), "slideID", id),
		http.StatusOK, &got)
	if got.Message != "新しい見出し" || !got.ExcludePerson {
		t.Fatalf("update not applied: %+v", got)
	}
	// Untouched fields survive a partial update.
	if got.SubMessage != "毎日続くから身につく" {
		t.Fatalf("sub message lost: %q", got.SubMessage)
	}

	do(t, env.H.UpdateSlide,
		withChiURLParam(jsonRequest(t, http.MethodPut, "/api/slides/"+id, map[string]any{
			"purpose": "hero",
		}), "slideID", id),
		http.StatusBadRequest, nil)
	do(t, env.H.UpdateSlide,
		withChiURLParam(jsonRequest(t, http.MethodPut, "/api/slides/"+id, map[string]any{
			"message": "",
		}), "slideID", id),
		http.StatusBadRequest, nil)
}

func TestGenerateSlidePromptAndImage(t *testing.T) {
	env := newTestEnv(t)
	_, sl := seedSlide(t, env, "https://example.com/handler-slide-prompt")

	tplName := "handler-slide-legacy-template"
	cleanTemplates(t, env.DB, tplName)
	t.Cleanup(func() { cleanTemplates(t, env.DB, tplName) })

	tpl, err := env.Templates.Create(&models.PromptTemplate{
		Name:           tplName,
		Category:       "汎用",
		BasePrompt:     "明るい背景の縦型広告。中央に「メインコピー」、下部に「サブコピー」。",
		SampleImageURL: "https://img.example/reference.png",
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	id := sl.ID.String()

	// No template paired yet.
	do(t, env.H.GenerateSlidePrompt,
		withChiURLParam(jsonRequest(t, http.MethodPost, "/api/slides/"+id+"/prompt", nil), "slideID", id),
		http.StatusConflict, nil)

	// Pair, then assemble and cache the prompt.
	var got models.Slide
	do(t, env.H.UpdateSlide,
		withChiURLParam(jsonRequest(t, http.MethodPut, "/api/slides/"+id, map[string]any{
			"selected_template_id": tpl.ID,
		}), "slideID", id),
		http.StatusOK, &got)
	do(t, env.H.GenerateSlidePrompt,
		withChiURLParam(jsonRequest(t, http.MethodPost, "/api/slides/"+id+"/prompt", nil), "slideID", id),
		http.StatusOK, &got)
	if !strings.Contains(got.Prompt, "「通勤15分がレッスンに変わる」") {
		t.Fatalf("slide message not filled into prompt: %q", got.Prompt)
	}
	if !strings.Contains(got.Prompt, "「毎日続くから身につく」") {
		t.Fatalf("sub message not filled into prompt: %q", got.Prompt)
	}

	stored, err := env.Slides.FindByID(sl.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload slide: %v %v", stored, err)
	}
	if stored.Prompt != got.Prompt {
		t.Fatal("rendered prompt was not cached on the slide")
	}

	// Image generation uses the cached prompt and the template reference.
	var imgResp map[string]string
	do(t, env.H.GenerateSlideImage,
		withChiURLParam(jsonRequest(t, http.MethodPost, "/api/slides/"+id+"/image", nil), "slideID", id),
		http.StatusOK, &imgResp)
	if imgResp["image_url"] != "https://img.example/generated.png" {
		t.Fatalf("image url = %q", imgResp["image_url"])
	}
	if env.Provider.lastImage.Prompt != stored.Prompt {
		t.Fatal("image request did not carry the cached prompt")
	}
	if len(env.Provider.lastImage.ReferenceImages) != 1 ||
		env.Provider.lastImage.ReferenceImages[0] != "https://img.example/reference.png" {
		t.Fatalf("reference images = %v", env.Provider.lastImage.ReferenceImages)
	}
}

func TestGenerateSlideImageWithoutPrompt(t *testing.T) {
	env := newTestEnv(t)
	_, sl := seedSlide(t, env, "https://example.com/handler-slide-no-prompt")

	id := sl.ID.String()
	do(t, env.H.GenerateSlideImage,
		withChiURLParam(jsonRequest(t, http.MethodPost, "/api/slides/"+id+"/image", nil), "slideID", id),
		http.StatusConflict, nil)
	if env.Provider.imgCalls != 0 {
		t.Fatalf("image calls = %d, want 0", env.Provider.imgCalls)
	}
}
