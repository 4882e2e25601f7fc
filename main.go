package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"walletpool/internal/config"
	"walletpool/internal/handler"
	"walletpool/internal/svc"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/walletpool.yaml", "the config file")

func main() {
	flag.Parse()

	// funder 私钥从 .env / 环境变量读取，不进配置文件
	_ = godotenv.Load()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	// 设置优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)

	// 在独立的goroutine中启动服务器
	go func() {
		server.Start()
	}()

	// 等待退出信号
	<-quit
	fmt.Println("\n🛑 收到退出信号，正在优雅关闭服务...")
	fmt.Println("✅ 服务已安全退出")
}
