package empleados

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mgomezmartin/ticketera/internal/common"
)

// Handler exposes the staff repository over HTTP.
type Handler struct {
	repo   *Repository
	logger *slog.Logger
}

func NewHandler(repo *Repository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes mounts the CRUD surface under /api/empleados.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/empleados", h.list)
	api.POST("/empleados", h.create)
	api.PUT("/empleados/:nombre", h.update)
	api.DELETE("/empleados/:nombre", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	empleados, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("empleados.list.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error al conectar con la base de datos"})
		return
	}
	c.JSON(http.StatusOK, empleados)
}

func (h *Handler) create(c *gin.Context) {
	var e Empleado
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if err := h.repo.Create(c.Request.Context(), &e); err != nil {
		h.logger.Warn("empleados.create.failed", "nombre", e.Nombre, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Error al agregar empleado - verifica que el nombre sea único"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Empleado agregado exitosamente"})
}

// updatePayload is the update body: every field of Empleado except the
// name, which comes from the path.
type updatePayload struct {
	PrimerApellido  string `json:"primer_apellido"`
	SegundoApellido string `json:"segundo_apellido"`
	Departamento    string `json:"Departamento"`
	TipoJornada     string `json:"Tipo_de_Jornada"`
	Horas           int    `json:"Horas"`
	HoraFichar      int    `json:"Hora_de_fichar"`
	Sueldo          int    `json:"Sueldo"`
}

func (h *Handler) update(c *gin.Context) {
	nombre := c.Param("nombre")
	var p updatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	e := Empleado{
		Nombre:          nombre,
		PrimerApellido:  p.PrimerApellido,
		SegundoApellido: p.SegundoApellido,
		Departamento:    p.Departamento,
		TipoJornada:     p.TipoJornada,
		Horas:           p.Horas,
		HoraFichar:      p.HoraFichar,
		Sueldo:          p.Sueldo,
	}
	if err := h.repo.Update(c.Request.Context(), nombre, &e); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Empleado no encontrado"})
			return
		}
		h.logger.Error("empleados.update.failed", "nombre", nombre, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error al actualizar empleado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Empleado actualizado exitosamente"})
}

func (h *Handler) remove(c *gin.Context) {
	nombre := c.Param("nombre")
	if err := h.repo.Delete(c.Request.Context(), nombre); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Empleado no encontrado"})
			return
		}
		h.logger.Error("empleados.delete.failed", "nombre", nombre, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error al eliminar empleado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Empleado eliminado exitosamente"})
}
