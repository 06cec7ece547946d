package server

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthtrack/frontend/internal/flow"
	"github.com/pageza/healthtrack/frontend/internal/types"
)

const maxAvatarSize = 5 << 20

// render writes a screen, following its redirect when it has one. Delayed
// redirects are rendered with a Refresh header so the message stays visible.
func (s *Server) render(c *gin.Context, name, title string, screen flow.Screen, data gin.H) {
	if screen.Redirected() {
		c.Redirect(http.StatusSeeOther, screen.Redirect)
		return
	}
	if screen.Redirect != "" {
		c.Header("Refresh", fmt.Sprintf("%d; url=%s", int(math.Ceil(screen.RedirectAfter.Seconds())), screen.Redirect))
	}

	data["Title"] = title
	data["Screen"] = screen
	data["Authenticated"] = s.app.Session.IsAuthenticated()

	status := http.StatusOK
	if len(screen.Fields) > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, name, data)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"session":       s.app.Session.Backend(),
		"authenticated": s.app.Session.IsAuthenticated(),
	})
}

func (s *Server) showAuth(c *gin.Context) {
	view := s.app.AuthFlow.Enter(flow.ParseAuthMode(c.Query("mode")))
	s.renderAuth(c, view)
}

func (s *Server) submitAuth(c *gin.Context) {
	var form flow.AuthForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	mode := flow.ParseAuthMode(c.PostForm("mode"))
	view := s.app.AuthFlow.Submit(c.Request.Context(), mode, form, c.ClientIP())
	s.renderAuth(c, view)
}

func (s *Server) renderAuth(c *gin.Context, view flow.AuthView) {
	title := "Sign in"
	if view.Mode == flow.ModeRegister {
		title = "Create an account"
	}
	s.render(c, "auth.tmpl", title, view.Screen, gin.H{
		"Mode":   view.Mode,
		"Toggle": view.Mode.Toggle(),
		"Form":   view.Form,
	})
}

func (s *Server) logout(c *gin.Context) {
	screen := s.app.Logout(c.Request.Context())
	c.Redirect(http.StatusSeeOther, screen.Redirect)
}

func (s *Server) showHome(c *gin.Context) {
	s.render(c, "home.tmpl", "Home", flow.Screen{}, gin.H{})
}

func (s *Server) showProfile(c *gin.Context) {
	view := s.app.ProfileFlow.Enter(c.Request.Context())
	s.renderProfile(c, view)
}

func (s *Server) submitProfile(c *gin.Context) {
	var form flow.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if url, msg := s.uploadAvatar(c); msg != "" {
		view := flow.ProfileView{Form: form, State: s.app.ProfileFlow.State()}
		view.Fields = flow.FieldErrors{"avatar": msg}
		s.renderProfile(c, view)
		return
	} else if url != "" {
		form.AvatarURL = url
	}

	view := s.app.ProfileFlow.Submit(c.Request.Context(), form)
	s.renderProfile(c, view)
}

// uploadAvatar stores an uploaded picture and returns the reference saved
// in the profile. A non-empty message reports why the upload was refused.
func (s *Server) uploadAvatar(c *gin.Context) (string, string) {
	if s.app.Avatars == nil {
		return "", ""
	}
	header, err := c.FormFile("avatar")
	if err != nil {
		return "", ""
	}
	if header.Size > maxAvatarSize {
		return "", "The picture must be smaller than 5 MB"
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "The picture must be an image"
	}
	userID, ok := s.app.Session.UserID()
	if !ok {
		userID = s.cfg.DefaultUserID
	}

	file, err := header.Open()
	if err != nil {
		log.Printf("error opening avatar upload: %v", err)
		return "", "The picture could not be read"
	}
	defer file.Close()

	ref, err := s.app.Avatars.UploadAvatar(c.Request.Context(), userID, filepath.Base(header.Filename), contentType, header.Size, file)
	if err != nil {
		log.Printf("error uploading avatar for user %d: %v", userID, err)
		return "", "The picture could not be uploaded. Please try again."
	}
	return ref, ""
}

// avatarPreview returns a displayable link for the stored avatar, or ""
func (s *Server) avatarPreview(c *gin.Context, ref string) string {
	if ref == "" {
		return ""
	}
	url, err := s.app.Avatars.AvatarURL(c.Request.Context(), ref)
	if err != nil {
		log.Printf("error signing avatar URL: %v", err)
		return ""
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return ""
	}
	return url
}

func (s *Server) renderProfile(c *gin.Context, view flow.ProfileView) {
	s.render(c, "profile.tmpl", "Your profile", view.Screen, gin.H{
		"Form":                 view.Form,
		"State":                view.State.String(),
		"Loading":              s.app.ProfileFlow.Loading(),
		"AvatarUploads":        s.app.Avatars != nil,
		"AvatarPreview":        s.avatarPreview(c, view.Form.AvatarURL),
		"GenderOptions":        types.GenderOptions,
		"ActivityLevelOptions": types.ActivityLevelOptions,
		"GoalOptions":          types.GoalOptions,
	})
}

func (s *Server) showHealthData(c *gin.Context) {
	view := s.app.HealthDataFlow.Enter(c.Request.Context())
	s.renderHealthData(c, view)
}

func (s *Server) submitHealthData(c *gin.Context) {
	var form flow.HealthDataForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	var view flow.HealthDataView
	switch c.PostForm("action") {
	case "predict-save":
		view = s.app.HealthDataFlow.PredictAndSave(ctx, form)
	case "predict":
		view = s.app.HealthDataFlow.Predict(ctx, form)
	default:
		view = s.app.HealthDataFlow.Submit(ctx, form)
	}
	s.renderHealthData(c, view)
}

func (s *Server) renderHealthData(c *gin.Context, view flow.HealthDataView) {
	s.render(c, "health_data.tmpl", "Today's health data", view.Screen, gin.H{
		"Form":                  view.Form,
		"Loading":               s.app.HealthDataFlow.Loading(),
		"DefaultCaloriesBurned": s.cfg.DefaultCaloriesBurned,
		"DietTypeOptions":       types.DietTypeOptions,
		"WorkoutTypeOptions":    types.WorkoutTypeOptions,
		"ExerciseLevelOptions":  types.ExerciseLevelOptions,
	})
}

func (s *Server) showHistory(c *gin.Context) {
	view := s.app.HealthDataFlow.History(c.Request.Context())
	s.render(c, "history.tmpl", "Health data history", view.Screen, gin.H{
		"Records": view.Records,
	})
}

func (s *Server) showPrediction(c *gin.Context) {
	view := s.app.PredictionFlow.Enter(c.Request.Context(), c.Query("prediction"))
	s.renderPrediction(c, view)
}

func (s *Server) retryPrediction(c *gin.Context) {
	view := s.app.PredictionFlow.Retry(c.Request.Context())
	s.renderPrediction(c, view)
}

func (s *Server) renderPrediction(c *gin.Context, view flow.PredictionView) {
	s.render(c, "prediction.tmpl", "Calories burned prediction", view.Screen, gin.H{
		"Calories":  view.Calories,
		"HasResult": view.HasResult,
		"Date":      view.Date,
		"Loading":   s.app.PredictionFlow.Loading(),
	})
}
