package api

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/export"
	imagepkg "github.com/youruser/moodboard/internal/image"
	"github.com/youruser/moodboard/internal/intake"
	"github.com/youruser/moodboard/internal/session"
)

const placeholderText = "Upload images to see preview"

// Gradient swatch size.
const (
	swatchWidth  = 200
	swatchHeight = 40
)

// Server exposes one session over HTTP.
type Server struct {
	session   *session.Session
	outputDir string
	now       func() time.Time
}

func NewServer(s *session.Session, outputDir string) *Server {
	return &Server{session: s, outputDir: outputDir, now: time.Now}
}

// rejection is the JSON shape of a skipped upload.
type rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

func rejections(rs []intake.Rejection) []rejection {
	out := make([]rejection, 0, len(rs))
	for _, r := range rs {
		slog.Info("upload rejected", "file", r.Filename, "reason", r.Reason, "err", r.Err)
		out = append(out, rejection{Filename: r.Filename, Reason: r.Reason, Message: r.Message()})
	}
	return out
}

// fail maps an error to a status code and the usual error body.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrEmptyBoard):
		c.JSON(http.StatusConflict, gin.H{"error": session.EmptyBoardMessage})
	case errors.Is(err, board.ErrUnknownLayout),
		errors.Is(err, board.ErrUnknownBackground),
		errors.Is(err, board.ErrInvalidColumns),
		errors.Is(err, board.ErrInvalidResolution),
		errors.Is(err, board.ErrTranslucentColor),
		errors.Is(err, imagepkg.ErrSurfaceTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Status())
}

func (s *Server) listImages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"images": s.session.Images()})
}

func readUpload(fh *multipart.FileHeader) (intake.File, error) {
	f := intake.File{
		Name:      fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Size:      fh.Size,
	}
	if fh.Size > intake.MaxBytes {
		return f, nil
	}
	fp, err := fh.Open()
	if err != nil {
		return f, err
	}
	defer fp.Close()
	f.Data, err = io.ReadAll(io.LimitReader(fp, intake.MaxBytes+1))
	return f, err
}

// uploadImages accepts multipart "files[]" (or "files"). Bad files are
// reported one by one; the good ones are still added.
func (s *Server) uploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var headers []*multipart.FileHeader
	for _, key := range []string{"files[]", "files"} {
		headers = append(headers, form.File[key]...)
	}
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	files := make([]intake.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = append(files, f)
	}

	assets, rejected := intake.Batch(files)
	lay, _ := s.session.Layout()
	if len(assets) > 0 {
		lay = s.session.Add(assets...)
	}
	if assets == nil {
		assets = []board.ImageAsset{}
	}
	c.JSON(http.StatusOK, gin.H{
		"added":    assets,
		"rejected": rejections(rejected),
		"layout":   lay,
	})
}

func (s *Server) addFromURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := intake.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		slog.Warn("image download failed", "url", req.URL, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	assets, rejected := intake.Batch([]intake.File{f})
	if len(assets) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"rejected": rejections(rejected)})
		return
	}
	lay := s.session.Add(assets...)
	c.JSON(http.StatusCreated, gin.H{"added": assets, "layout": lay})
}

func (s *Server) deleteImage(c *gin.Context) {
	lay, err := s.session.Remove(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": lay})
}

func (s *Server) moveImage(c *gin.Context) {
	var req struct {
		Target   string `json:"target" binding:"required"`
		Position string `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Position == "" {
		req.Position = "before"
	}
	pos, ok := board.ParsePosition(req.Position)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position must be before or after"})
		return
	}
	lay, err := s.session.Move(c.Param("id"), req.Target, pos)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": lay})
}

func (s *Server) setLabel(c *gin.Context) {
	var req struct {
		Label *string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lay, err := s.session.SetLabel(c.Param("id"), *req.Label)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": lay})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Settings())
}

// putSettings decodes the body over the current settings, so fields left
// out keep their values.
func (s *Server) putSettings(c *gin.Context) {
	settings := s.session.Settings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lay, err := s.session.UpdateSettings(settings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings, "layout": lay})
}

func (s *Server) getLayout(c *gin.Context) {
	lay, err := s.session.Layout()
	if errors.Is(err, session.ErrEmptyBoard) {
		c.JSON(http.StatusOK, gin.H{"layout": nil, "placeholder": placeholderText})
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": lay})
}

func (s *Server) preview(c *gin.Context) {
	img, err := s.session.Preview()
	if errors.Is(err, session.ErrEmptyBoard) {
		c.JSON(http.StatusOK, gin.H{"placeholder": placeholderText})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	b, err := export.PNG(img)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, export.ContentType, b)
}

// exportBoard renders at the export resolution. With ?save=1 the PNG is
// also written to the output directory.
func (s *Server) exportBoard(c *gin.Context) {
	img, settings, err := s.session.Export()
	if err != nil {
		fail(c, err)
		return
	}
	name := export.Filename(settings, s.now())
	if c.Query("save") == "1" {
		p, err := export.Save(s.outputDir, name, img)
		if err != nil {
			fail(c, err)
			return
		}
		slog.Info("export saved", "path", p)
	}
	b, err := export.PNG(img)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentType, b)
}

// gradientPreview renders a swatch of the configured gradient. The query
// parameters color1, color2 and direction preview other values without
// changing the settings.
func (s *Server) gradientPreview(c *gin.Context) {
	settings := s.session.Settings()
	for key, dst := range map[string]*board.Color{
		"color1": &settings.GradientColor1,
		"color2": &settings.GradientColor2,
	} {
		if v := c.Query(key); v != "" {
			col, err := board.ParseColor(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			*dst = col
		}
	}
	if v := c.Query("direction"); v != "" {
		settings.GradientDirection = board.GradientDirection(v)
	}
	if err := settings.Validate(); err != nil {
		fail(c, err)
		return
	}
	swatch, err := imagepkg.GradientSwatch(settings, swatchWidth, swatchHeight)
	if err != nil {
		fail(c, err)
		return
	}
	b, err := export.PNG(swatch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, export.ContentType, b)
}
