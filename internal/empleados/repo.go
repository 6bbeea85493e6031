// Package empleados is the staff management service: a small CRUD HTTP
// surface over the empleado staff table, keyed by employee name. It only
// consumes a list-of-records contract and knows nothing about the receipt
// pipeline.
package empleados

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/mgomezmartin/ticketera/internal/common"
)

// Empleado is one staff record.
type Empleado struct {
	Nombre          string `db:"nombre" json:"Nombre" binding:"required"`
	PrimerApellido  string `db:"primer_apellido" json:"primer_apellido"`
	SegundoApellido string `db:"segundo_apellido" json:"segundo_apellido"`
	Departamento    string `db:"departamento" json:"Departamento"`
	TipoJornada     string `db:"tipo_jornada" json:"Tipo_de_Jornada"`
	Horas           int    `db:"horas" json:"Horas"`
	HoraFichar      int    `db:"hora_fichar" json:"Hora_de_fichar"`
	Sueldo          int    `db:"sueldo" json:"Sueldo"`
}

// Repository persists staff records through sqlx.
type Repository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewRepository(db *sqlx.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// EnsureSchema creates the staff table when missing. Nombre is the primary
// key, matching the original single-name lookup contract.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS empleado_plantilla (
	nombre VARCHAR(100) PRIMARY KEY,
	primer_apellido VARCHAR(100),
	segundo_apellido VARCHAR(100),
	departamento VARCHAR(100),
	tipo_jornada VARCHAR(50),
	horas INT,
	hora_fichar INT,
	sueldo INT
)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure staff schema: %w", err)
	}
	return nil
}

// List returns all staff records ordered by name.
func (r *Repository) List(ctx context.Context) ([]Empleado, error) {
	out := []Empleado{}
	err := r.db.SelectContext(ctx, &out,
		"SELECT nombre, primer_apellido, segundo_apellido, departamento, tipo_jornada, horas, hora_fichar, sueldo FROM empleado_plantilla ORDER BY nombre")
	if err != nil {
		return nil, common.WrapError(err, "list empleados")
	}
	return out, nil
}

// Create inserts a new record. A duplicate name surfaces as ErrInvalidInput.
func (r *Repository) Create(ctx context.Context, e *Empleado) error {
	query := r.db.Rebind(`INSERT INTO empleado_plantilla
	(nombre, primer_apellido, segundo_apellido, departamento, tipo_jornada, horas, hora_fichar, sueldo)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		e.Nombre, e.PrimerApellido, e.SegundoApellido, e.Departamento,
		e.TipoJornada, e.Horas, e.HoraFichar, e.Sueldo)
	if err != nil {
		// Unique violation on the name primary key.
		return common.NewAppError("EMPLEADO_DUPLICADO",
			fmt.Sprintf("no se pudo crear %q", e.Nombre), common.ErrInvalidInput)
	}
	return nil
}

// Update overwrites all mutable fields of the record named nombre.
func (r *Repository) Update(ctx context.Context, nombre string, e *Empleado) error {
	query := r.db.Rebind(`UPDATE empleado_plantilla SET
	primer_apellido = ?, segundo_apellido = ?, departamento = ?,
	tipo_jornada = ?, horas = ?, hora_fichar = ?, sueldo = ?
	WHERE nombre = ?`)
	res, err := r.db.ExecContext(ctx, query,
		e.PrimerApellido, e.SegundoApellido, e.Departamento,
		e.TipoJornada, e.Horas, e.HoraFichar, e.Sueldo, nombre)
	if err != nil {
		return common.WrapError(err, "update empleado")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "update empleado")
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the record named nombre.
func (r *Repository) Delete(ctx context.Context, nombre string) error {
	query := r.db.Rebind("DELETE FROM empleado_plantilla WHERE nombre = ?")
	res, err := r.db.ExecContext(ctx, query, nombre)
	if err != nil {
		return common.WrapError(err, "delete empleado")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "delete empleado")
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
