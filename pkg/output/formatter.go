// Package output formata os resultados da linha de comando em tabela, JSON ou YAML
package output

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Formatter define a interface de formatação da saída
type Formatter interface {
	Format(data any) string
}

// NewFormatter retorna o Formatter do formato informado: "table" (padrão), "json" ou "yaml"
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}
	case "yaml":
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Formats lista os formatos aceitos pela flag --output
var Formats = []string{"table", "json", "yaml"}

// TableFormatter alinha os dados em colunas com tabwriter
type TableFormatter struct{}

func (f *TableFormatter) Format(data any) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	switch v := data.(type) {
	case domain.QuotePresentation:
		writeQuote(w, v)
	case *domain.QuotePresentation:
		writeQuote(w, *v)
	default:
		writeGeneric(w, data)
	}

	w.Flush()
	return buf.String()
}

func writeQuote(w *tabwriter.Writer, q domain.QuotePresentation) {
	fmt.Fprintf(w, "Configuração:\t%s\n", q.ConfigVersion)
	fmt.Fprintf(w, "Produto:\t%s\n", q.Product)
	fmt.Fprintf(w, "Ciclo:\t%s\n", q.Cycle)
	if q.KomboID != "" {
		fmt.Fprintf(w, "Kombo:\t%s\n", q.KomboID)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ITEM\tPLANO\tMENSAL\tIMPLANTAÇÃO\tKOMBO")
	for _, line := range q.LineItems {
		implementation := money(line.Implementation)
		if line.ImplementationWaived {
			implementation = "grátis"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", line.Label, line.PlanTier, money(line.Monthly), implementation, yesNo(line.KomboApplied))
	}

	if len(q.PostPaid) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PÓS-PAGO\tINCLUÍDO\tADICIONAL\tPOR UNIDADE\tTOTAL")
		for _, group := range q.PostPaid {
			for _, item := range group.Items {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", item.Label, item.Included, item.Additional, cents(item.PerUnit), money(item.Total))
			}
		}
	}

	if len(q.Premium) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SERVIÇO\tSITUAÇÃO\tVALOR")
		for _, service := range q.Premium {
			fmt.Fprintf(w, "%s\t%s\t%s\n", service.Label, service.Status, money(service.Amount))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total mensal:\t%s\n", money(q.TotalMonthly))
	fmt.Fprintf(w, "Total anual:\t%s\n", money(q.TotalAnnual))
	fmt.Fprintf(w, "Implantação:\t%s\n", money(q.ImplantationFee))
	fmt.Fprintf(w, "Treinamentos:\t%s\n", money(q.TrainingTotal))
	fmt.Fprintf(w, "Primeiro ano:\t%s\n", money(q.FirstYearTotal))
	fmt.Fprintf(w, "Cobrança do ciclo:\t%s em até %dx de %s\n", money(q.CycleCharge), q.MaxInstallments, money(q.InstallmentValue))
	fmt.Fprintf(w, "Pós-pago estimado:\t%s\n", money(q.PostPaidTotal))
	fmt.Fprintf(w, "Receita boletos:\t%s\n", money(q.RevenueFromBoletos))
	fmt.Fprintf(w, "Receita seguros:\t%s\n", money(q.RevenueFromInsurance))
	if q.CashRevenue != nil {
		fmt.Fprintf(w, "Potencial Cash:\t%s\n", money(*q.CashRevenue))
	}
	fmt.Fprintf(w, "Ganho líquido:\t%s\n", money(q.NetGain))
}

// writeGeneric imprime structs como pares campo/valor e slices linha a linha
func writeGeneric(w *tabwriter.Writer, data any) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			fmt.Fprintln(w, "Nenhum resultado.")
			return
		}
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			fmt.Fprintf(w, "%s:\t%v\n", t.Field(i).Name, v.Field(i).Interface())
		}
	default:
		fmt.Fprintln(w, data)
	}
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.0f", v)
}

func cents(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

// JSONFormatter formata os dados como JSON indentado
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) string {
	out, err := utils.PrettyJSON(data)
	if err != nil {
		return fmt.Sprintf("erro ao formatar JSON: %v\n", err)
	}
	return out
}

// YAMLFormatter formata os dados como YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) string {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("erro ao formatar YAML: %v\n", err)
	}
	return string(b)
}
