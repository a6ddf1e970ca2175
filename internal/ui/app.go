// Package ui is the Fyne desktop shell around a cropping session.
package ui

import (
	"context"
	"errors"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/menta2k/image-cropper/internal/config"
	"github.com/menta2k/image-cropper/internal/utils"
	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/imagefile"
	"github.com/menta2k/image-cropper/pkg/placement"
	"github.com/menta2k/image-cropper/pkg/session"
)

// AppID identifies the application to Fyne preferences and storage
const AppID = "com.menta2k.image-cropper"

// App wires the window widgets to a session. Session operations report
// their failures through the session status, which refresh copies to the
// status label, so their returned errors are not handled again here.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	session   *session.Session
	suggester placement.Suggester

	fyneApp fyne.App
	window  fyne.Window

	canvas     *CropCanvas
	sizeSelect *widget.Select
	placeBtn   *widget.Button
	status     *widget.Label
}

// New creates the window; Run shows it
func New(cfg *config.Config, log *zap.Logger, s *session.Session, suggester placement.Suggester) *App {
	a := &App{
		cfg:       cfg,
		log:       log,
		session:   s,
		suggester: suggester,
		fyneApp:   app.NewWithID(AppID),
	}
	a.window = a.fyneApp.NewWindow("Image Cropper")
	a.window.SetContent(a.buildContent())
	a.window.Resize(fyne.NewSize(cfg.UI.Width, cfg.UI.Height))
	a.window.SetOnDropped(a.onDropped)
	return a
}

// Run shows the window and blocks until it is closed
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) buildContent() fyne.CanvasObject {
	a.canvas = NewCropCanvas(a.session, a.cfg.UI.HandleSize)
	a.canvas.OnEmptyTap = a.showOpenDialog

	a.sizeSelect = widget.NewSelect(cropbox.Labels(), func(label string) {
		if err := a.session.SelectTarget(label); err != nil {
			a.log.Warn("Rejected target", zap.String("label", label), zap.Error(err))
			return
		}
		a.refresh()
	})
	a.sizeSelect.SetSelected(a.session.Target().String())

	loadBtn := widget.NewButton("Load Image", a.showOpenDialog)
	saveBtn := widget.NewButton("Save Crop", a.showSaveDialog)
	saveBtn.Importance = widget.HighImportance
	a.placeBtn = widget.NewButton("Auto Place", a.autoPlace)

	a.status = widget.NewLabel("")

	toolbar := container.NewHBox(loadBtn, widget.NewLabel("Size:"), a.sizeSelect, a.placeBtn, saveBtn)
	return container.NewBorder(toolbar, a.status, nil, nil, a.canvas)
}

func (a *App) refresh() {
	a.status.SetText(a.session.Status())
	a.canvas.Refresh()
}

func (a *App) showOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		_ = a.session.LoadReader(r, r.URI().String())
		a.refresh()
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(imagefile.Extensions))
	d.Show()
}

// canSave renders the crop before any destination is chosen; the save
// dialog creates its file as soon as the user confirms
func (a *App) canSave() bool {
	if _, err := a.session.Render(); err != nil {
		a.refresh()
		return false
	}
	return true
}

func (a *App) showSaveDialog() {
	if !a.canSave() {
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		a.save(w)
	}, a.window)
	d.SetFileName(a.session.SuggestedFilename())
	if dir := a.cfg.Output.Dir; dir != "" && utils.DirExists(dir) {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

// save writes the crop to the destination opened by the save dialog. Local
// files are written by path so the encode goes through a temporary file; the
// empty file the dialog created is removed when the save fails.
func (a *App) save(w fyne.URIWriteCloser) {
	uri := w.URI()
	if uri.Scheme() != "file" {
		a.saveToWriter(w)
		return
	}

	_ = w.Close()
	path := uri.Path()
	if err := a.session.Save(path); err != nil {
		if info, statErr := os.Stat(path); statErr == nil && info.Size() == 0 {
			if rmErr := os.Remove(path); rmErr != nil {
				a.log.Warn("Failed to remove empty save target", zap.String("path", path), zap.Error(rmErr))
			}
		}
	}
	a.refresh()
}

func (a *App) saveToWriter(w fyne.URIWriteCloser) {
	uri := w.URI()
	err := a.session.SaveTo(w, uri.Name())
	cerr := w.Close()
	a.refresh()
	if cerr != nil && err == nil {
		a.log.Error("Failed to close save target", zap.String("uri", uri.String()), zap.Error(cerr))
		a.status.SetText("Save failed: " + cerr.Error())
	}
}

func (a *App) onDropped(_ fyne.Position, uris []fyne.URI) {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u.Scheme() == "file" {
			paths = append(paths, u.Path())
		}
	}

	path, ok := utils.FirstSupportedFile(paths)
	if !ok {
		a.status.SetText("Drop a PNG, JPEG or BMP file")
		return
	}
	_ = a.session.Load(path)
	a.refresh()
}

// autoPlace runs the suggester off the UI goroutine; vision placement can
// take seconds
func (a *App) autoPlace() {
	if err := a.session.RequireImage(); err != nil {
		a.refresh()
		return
	}

	img := a.session.Image()
	side := a.session.Target().Side()
	gen := a.session.Generation()
	a.placeBtn.Disable()
	a.status.SetText("Placing...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Placement.Timeout)
		defer cancel()

		box, err := a.suggester.Suggest(ctx, img, side)
		if errors.Is(err, context.DeadlineExceeded) {
			a.log.Warn("Placement timed out", zap.Duration("timeout", a.cfg.Placement.Timeout))
		}

		fyne.Do(func() {
			_ = a.session.ApplyPlacement(gen, box, err)
			a.placeBtn.Enable()
			a.refresh()
		})
	}()
}
