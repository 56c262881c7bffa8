// embedcode 为已保存的表单或模板生成嵌入代码，输出到标准输出或复制到剪贴板
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/config"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/pkg/database"
	"github.com/apper-apps/agencyflowapi/internal/repository"
)

func main() {
	klog.InitFlags(nil)
	id := flag.Uint("id", 0, "id of the saved form or template")
	kind := flag.String("kind", string(embedcode.KindInline), "embed kind: inline, iframe, popup or redirect")
	copyToClipboard := flag.Bool("copy", false, "copy the code to the clipboard instead of printing it")
	origin := flag.String("origin", "", "public origin, defaults to server.public_origin")
	flag.Parse()
	defer klog.Flush()

	if err := run(context.Background(), uint(*id), embedcode.Kind(*kind), *copyToClipboard, *origin); err != nil {
		fmt.Fprintln(os.Stderr, "embedcode:", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, id uint, kind embedcode.Kind, copyToClipboard bool, origin string) error {
	cfg := config.GetConfig()
	if origin == "" {
		origin = cfg.Server.PublicOrigin
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	doc, err := repository.NewFormRepository(db).Get(ctx, id)
	if err != nil {
		return err
	}

	gen := embedcode.NewGenerator(origin)
	if copyToClipboard {
		if _, err := gen.Copy(embedcode.SystemClipboard{}, doc, kind); err != nil {
			return err
		}
		fmt.Println("Embed code copied to clipboard!")
		return nil
	}

	code, err := gen.Generate(doc, kind)
	if err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("unknown embed kind %q", kind)
	}
	fmt.Println(code)
	return nil
}
