// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"strconv"
	"strings"
)

// Table describes an entity table: its name, generated key column, and the
// writable columns in the order values are supplied.
type Table struct {
	Name    string
	Key     string
	Columns []string
}

var (
	Estados = Table{
		Name:    "estado",
		Key:     "id_estado",
		Columns: []string{"nombre", "numero_habitantes", "capital"},
	}

	Municipios = Table{
		Name:    "municipio",
		Key:     "id_municipio",
		Columns: []string{"nombre", "tipo_zona", "numero_habitantes", "pueblo_magico", "tipo", "id_estado"},
	}
)

// selectList is the key followed by the writable columns, the order rows are scanned in.
func (t Table) selectList() string {
	return t.Key + ", " + strings.Join(t.Columns, ", ")
}

// SelectAllSQL lists every row ordered by key.
func (t Table) SelectAllSQL() string {
	return "SELECT " + t.selectList() + " FROM " + t.Name + " ORDER BY " + t.Key
}

func (t Table) selectByKeySQL() string {
	return "SELECT " + t.selectList() + " FROM " + t.Name + " WHERE " + t.Key + " = $1"
}

func (t Table) insertSQL() string {
	marks := make([]string, len(t.Columns))
	for i := range t.Columns {
		marks[i] = "$" + strconv.Itoa(i+1)
	}
	return "INSERT INTO " + t.Name + " (" + strings.Join(t.Columns, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// updateSQL sets every column; the key is the last placeholder.
func (t Table) updateSQL() string {
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = c + " = $" + strconv.Itoa(i+1)
	}
	return "UPDATE " + t.Name + " SET " + strings.Join(sets, ", ") + " WHERE " + t.Key + " = $" + strconv.Itoa(len(t.Columns)+1)
}

func (t Table) deleteSQL() string {
	return "DELETE FROM " + t.Name + " WHERE " + t.Key + " = $1"
}
