package environment

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/visorhq/visor/host/internal/shared/types"
)

// Provider implements the environment capability bridge. Every op is a
// synchronous read of process-local information; nothing here performs a
// host round trip.
type Provider struct {
	version string
}

// NewProvider creates an environment provider reporting version as the
// application version string
func NewProvider(version string) *Provider {
	return &Provider{version: version}
}

// Definition returns the published bridge shape
func (p *Provider) Definition() types.Bridge {
	return types.Bridge{
		ID:          "environment",
		Name:        "Environment Bridge",
		Description: "Process and OS information",
		Category:    types.CategoryEnvironment,
		Values: map[string]interface{}{
			"platform": runtime.GOOS,
			"pid":      os.Getpid(),
		},
		Ops: []types.Op{
			{
				ID:          "environment.getEnvVar",
				Name:        "Get Environment Variable",
				Description: "Look up an environment variable of the host process",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Variable name", Required: true},
				},
				Returns: "string",
				Sync:    true,
			},
			{
				ID:          "environment.getHostname",
				Name:        "Get Hostname",
				Description: "Get the host machine name",
				Parameters:  []types.Parameter{},
				Returns:     "string",
				Sync:        true,
			},
			{
				ID:          "environment.getNetworkInterfaces",
				Name:        "Get Network Interfaces",
				Description: "Enumerate host network interface addresses",
				Parameters:  []types.Parameter{},
				Returns:     "array",
				Sync:        true,
			},
			{
				ID:          "environment.getAppVersion",
				Name:        "Get App Version",
				Description: "Get the application version string",
				Parameters:  []types.Parameter{},
				Returns:     "string",
				Sync:        true,
			},
		},
	}
}

// Execute runs an environment op
func (p *Provider) Execute(ctx context.Context, opID string, params map[string]interface{}) (*types.Result, error) {
	switch opID {
	case "environment.getEnvVar":
		return p.getEnvVar(params)
	case "environment.getHostname":
		return p.getHostname()
	case "environment.getNetworkInterfaces":
		return p.getNetworkInterfaces(ctx)
	case "environment.getAppVersion":
		return success(map[string]interface{}{"version": p.version})
	default:
		return failure(fmt.Sprintf("unknown op: %s", opID))
	}
}

func (p *Provider) getEnvVar(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}
	value, found := os.LookupEnv(name)
	if !found {
		// absent variables are reported as an explicit null value
		return success(map[string]interface{}{"value": nil})
	}
	return success(map[string]interface{}{"value": value})
}

func (p *Provider) getHostname() (*types.Result, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return failure(fmt.Sprintf("failed to resolve hostname: %v", err))
	}
	return success(map[string]interface{}{"hostname": hostname})
}

func (p *Provider) getNetworkInterfaces(ctx context.Context) (*types.Result, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("failed to enumerate interfaces: %v", err))
	}

	interfaces := collectInterfaces(stats)
	return success(map[string]interface{}{"interfaces": interfaces})
}

// collectInterfaces flattens interface stats into one record per address.
// Interfaces without any address entry are omitted entirely, and a missing
// prefix is normalized to a nil CIDR rather than an absent key.
func collectInterfaces(stats psnet.InterfaceStatList) []types.NetworkInterface {
	records := make([]types.NetworkInterface, 0, len(stats))
	for _, stat := range stats {
		for _, addr := range stat.Addrs {
			if addr.Addr == "" {
				continue
			}
			records = append(records, interfaceRecord(stat.Name, addr.Addr))
		}
	}
	return records
}

func interfaceRecord(name, addr string) types.NetworkInterface {
	record := types.NetworkInterface{Name: name}

	ip, ipNet, err := net.ParseCIDR(addr)
	if err != nil {
		// bare address with no prefix information
		record.Address = addr
		record.Family = familyOf(net.ParseIP(addr))
		return record
	}

	cidr := addr
	record.Address = ip.String()
	record.Family = familyOf(ip)
	record.Netmask = net.IP(ipNet.Mask).String()
	record.CIDR = &cidr
	return record
}

func familyOf(ip net.IP) string {
	if ip == nil {
		return "unknown"
	}
	if ip.To4() != nil {
		return "IPv4"
	}
	return "IPv6"
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
