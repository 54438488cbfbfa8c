// seed genera un script SQL para cargar la cartera de clientes de un ISP a partir
// de la hoja de cálculo que llevaba el cobrador (exportada a CSV).
//
// Uso:
//
//	go run ./cmd/seed -company <uuid> -in clientes.csv [-encoding latin1] [-out seed.sql]
//
// Columnas esperadas (con encabezado): nombre, telefono, direccion, plan, dia_corte, adeudo.
// El plan se busca por nombre dentro de la empresa; el ID de cada cuenta se deriva del
// nombre y teléfono, así que volver a correr el script no duplica clientes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	companyID := flag.String("company", "", "UUID de la empresa (ISP)")
	in := flag.String("in", "clientes.csv", "archivo CSV de entrada")
	out := flag.String("out", "", "archivo SQL de salida (vacío = stdout)")
	encoding := flag.String("encoding", "utf8", "codificación del CSV: utf8 | latin1")
	period := flag.String("period", "", "mes AAAA-MM ya cargado en el adeudo inicial (vacío = ninguno)")
	flag.Parse()

	company, err := uuid.Parse(*companyID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "company inválido: %v\n", err)
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	switch *encoding {
	case "utf8", "utf-8":
	case "latin1", "iso-8859-1", "windows-1252":
		// Excel en español exporta CSV en Windows-1252 por defecto.
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		fmt.Fprintf(os.Stderr, "encoding desconocido: %s\n", *encoding)
		os.Exit(2)
	}

	rows, skipped, err := parseClients(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		w, err = os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
	}
	if err := writeSQL(w, company, *period, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Generadas %d cuentas (%d filas omitidas)\n", len(rows), len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "  línea %d: %s\n", s.line, s.reason)
	}
}
