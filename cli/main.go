package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

func main() {
	// 1. 定义命令行参数
	op := flag.String("op", "balances", "要执行的操作 (create, fund, drain, balances)")
	chain := flag.String("chain", "BSC-TestNet", "目标区块链 (需在服务配置的 Chains 中)")
	count := flag.Int("count", 1, "create: 要创建的钱包数量")
	amount := flag.String("amount", "0.01", "fund: 每个钱包的充值金额 (人类单位)")
	minBalance := flag.String("min", "0.005", "fund: 余额达到该阈值的钱包跳过充值")
	host := flag.String("host", "http://localhost:8888", "钱包池服务地址")
	flag.Parse()

	// 2. 根据操作类型构造请求
	var (
		resp *http.Response
		err  error
	)
	switch *op {
	case "create":
		resp, err = postJSON(*host+"/api/wallet/create", map[string]interface{}{
			"chain": *chain,
			"count": *count,
		})
	case "fund":
		resp, err = postJSON(*host+"/api/wallet/fund", map[string]interface{}{
			"chain":       *chain,
			"amount":      *amount,
			"min_balance": *minBalance,
		})
	case "drain":
		resp, err = postJSON(*host+"/api/wallet/drain", map[string]interface{}{
			"chain": *chain,
		})
	case "balances":
		resp, err = http.Get(*host + "/api/wallet/balances?chain=" + url.QueryEscape(*chain))
	default:
		log.Fatalf("错误: 未知操作 %q", *op)
	}
	if err != nil {
		log.Fatalf("错误: 发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	// 3. 读取并打印响应结果
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("错误: 读取响应体失败: %v", err)
	}

	fmt.Println("\n--- 响应结果 ---")
	fmt.Printf("状态码: %s\n", resp.Status)
	fmt.Println(string(body))
}

func postJSON(target string, payload map[string]interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("错误: 无法打包 JSON 数据: %v", err)
	}

	fmt.Printf("正向 %s 发送请求...\n", target)
	fmt.Printf("请求体: %s\n", string(jsonData))

	return http.Post(target, "application/json", bytes.NewBuffer(jsonData))
}
