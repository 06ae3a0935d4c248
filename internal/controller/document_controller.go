package controller

import (
	"fmt"
	"strconv"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/internal/service"
	"student-analyzer-be/pkg/translate"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router, jwt fiber.Handler)
	State(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	SetView(ctx *fiber.Ctx) error
	AskDoubt(ctx *fiber.Ctx) error
	Assessment(ctx *fiber.Ctx) error
	SubmitAssessment(ctx *fiber.Ctx) error
	VideoScript(ctx *fiber.Ctx) error
	DownloadVideoScript(ctx *fiber.Ctx) error
	GenerateVideo(ctx *fiber.Ctx) error
	Conclusion(ctx *fiber.Ctx) error
	PersonalizedPdf(ctx *fiber.Ctx) error
	SetLanguage(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Languages(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router, jwt fiber.Handler) {
	r.Get("/languages", c.Languages)

	h := r.Group("/document/v1")
	h.Use(jwt)
	h.Get("/state", c.State)
	h.Post("/analyze", c.Analyze)
	h.Put("/view", c.SetView)
	h.Post("/doubt", c.AskDoubt)
	h.Get("/assessment", c.Assessment)
	h.Post("/assessment", c.SubmitAssessment)
	h.Get("/video-script", c.VideoScript)
	h.Get("/video-script/download", c.DownloadVideoScript)
	h.Post("/video", c.GenerateVideo)
	h.Get("/conclusion", c.Conclusion)
	h.Post("/personalized-pdf", c.PersonalizedPdf)
	h.Put("/language", c.SetLanguage)
	h.Post("/reset", c.Reset)
}

func (c *documentController) State(ctx *fiber.Ctx) error {
	res, err := c.service.State(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *documentController) Analyze(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please upload a PDF or PowerPoint file")
	}
	levelMode, _ := strconv.ParseBool(ctx.FormValue("level_mode"))

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	req := &dto.AnalyzeRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		LevelMode:   levelMode,
	}
	res, err := c.service.Analyze(ctx.Context(), serverutils.UserEmail(ctx), req, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analysis completed successfully!", res))
}

func (c *documentController) SetView(ctx *fiber.Ctx) error {
	var req dto.SetViewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.SetView(ctx.Context(), serverutils.UserEmail(ctx), req.View)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("View changed", res))
}

func (c *documentController) AskDoubt(ctx *fiber.Ctx) error {
	var req dto.DoubtRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AskDoubt(ctx.Context(), serverutils.UserEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Professor's response", res))
}

func (c *documentController) Assessment(ctx *fiber.Ctx) error {
	res, err := c.service.Assessment(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Choose the best answer for each question", res))
}

func (c *documentController) SubmitAssessment(ctx *fiber.Ctx) error {
	var req dto.SubmitAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitAssessment(ctx.Context(), serverutils.UserEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assessment results", res))
}

func (c *documentController) VideoScript(ctx *fiber.Ctx) error {
	res, err := c.service.VideoScript(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Educational video script", res))
}

func (c *documentController) DownloadVideoScript(ctx *fiber.Ctx) error {
	script, err := c.service.VideoScriptFile(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, service.VideoScriptFileName))
	return ctx.Send(script)
}

func (c *documentController) GenerateVideo(ctx *fiber.Ctx) error {
	res, err := c.service.GenerateVideo(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Video lessons", res))
}

func (c *documentController) Conclusion(ctx *fiber.Ctx) error {
	res, err := c.service.Conclusion(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conclusion & applications", res))
}

func (c *documentController) PersonalizedPdf(ctx *fiber.Ctx) error {
	pdf, err := c.service.PersonalizedPdf(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, pdf.FileName))
	return ctx.Send(pdf.Content)
}

func (c *documentController) SetLanguage(ctx *fiber.Ctx) error {
	var req dto.LanguageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetLanguage(ctx.Context(), serverutils.UserEmail(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Language updated", res))
}

func (c *documentController) Reset(ctx *fiber.Ctx) error {
	res, err := c.service.Reset(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Ready for a new analysis", res))
}

func (c *documentController) Languages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Supported languages", dto.LanguagesResponse{Languages: translate.Supported}))
}
