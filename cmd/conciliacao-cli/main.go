// cmd/conciliacao-cli/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"conciliacao-service/internal/config"
	"conciliacao-service/internal/core/export"
	"conciliacao-service/internal/core/merchant"
	"conciliacao-service/internal/core/reconciliation"
	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"
	"conciliacao-service/internal/logger"

	"go.uber.org/zap"
)

// fileList acumula caminhos de flags repetidas ou separados por vírgula.
type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*f = append(*f, p)
		}
	}
	return nil
}

func sources(paths []string) []spreadsheet.Source {
	out := make([]spreadsheet.Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, spreadsheet.FileSource(p))
	}
	return out
}

func main() {
	cfg, err := config.LoadConfig("conciliacao")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Falha ao carregar a configuração: %v\n", err)
		os.Exit(1)
	}

	var cielo, vendas fileList
	inicio := flag.String("inicio", "", "data inicial (dd/mm/aaaa)")
	fim := flag.String("fim", "", "data final (dd/mm/aaaa)")
	consolidado := flag.Bool("consolidado", false, "gera um único arquivo para o intervalo")
	saida := flag.String("saida", cfg.Export.OutputDir, "pasta de saída")
	controle := flag.String("controle", cfg.Export.ControlCode, "código fixo da linha de controle (vazio: do estabelecimento)")
	flag.Var(&cielo, "cielo", "relatório Cielo .xlsx (repita ou separe por vírgula)")
	flag.Var(&vendas, "vendas", "relatório de vendas .xlsx (repita ou separe por vírgula)")
	flag.Parse()

	log, err := logger.New(cfg.Logging.Level, cfg.Application.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Falha ao iniciar o logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(log, *inicio, *fim, cielo, vendas, *consolidado, *saida, *controle))
}

// run devolve o código de saída; o logger é descarregado aqui porque os.Exit não executa defers de main.
func run(log *zap.Logger, inicio, fim string, cielo, vendas []string, consolidado bool, saida, controle string) int {
	defer func() { _ = log.Sync() }()

	period, err := domain.ParsePeriod(inicio, fim)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(cielo) == 0 || len(vendas) == 0 {
		fmt.Fprintln(os.Stderr, "Um ou mais arquivos não foram enviados.")
		return 2
	}

	result, err := reconciliation.NewService(merchant.NewClassifier(), log).
		Reconcile(period, sources(cielo), sources(vendas))
	if errors.Is(err, domain.ErrNoRecordsInRange) {
		fmt.Println(err)
		return 0
	}
	if err != nil {
		log.Error("falha na conciliação", zap.Error(err))
		return 1
	}

	files, err := export.NewService(controle, log).Export(result, consolidado)
	if err != nil {
		log.Error("falha ao gerar os arquivos", zap.Error(err))
		return 1
	}

	paths, err := export.WriteToDir(saida, files)
	for i, p := range paths {
		if filepath.Base(p) != files[i].Name {
			log.Warn("arquivo em uso, gravado com outro nome",
				zap.String("arquivo", files[i].Name), zap.String("gravado_como", p))
		}
		fmt.Println(p)
	}
	if err != nil {
		log.Error("falha ao gravar os arquivos", zap.Error(err))
		return 1
	}
	return 0
}
