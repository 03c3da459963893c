package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BerryBytes/rolectl/cmd/root"
	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/internal/config"
	"github.com/BerryBytes/rolectl/internal/provider"
	"github.com/BerryBytes/rolectl/internal/sso"
	generalutils "github.com/BerryBytes/rolectl/utils/general"
	promptutils "github.com/BerryBytes/rolectl/utils/prompt"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	log.SetOutput(os.Stderr)

	fs := afero.NewOsFs()
	cfg, err := config.NewConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := cache.New(cfg.CacheBackend, fs, cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session cache: %v\n", err)
		os.Exit(1)
	}

	tokenDir, err := sso.DefaultTokenCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profileSSO := profileSSOSettings(fs, cfg.Profile)
	ssoSettings := resolveSSOSettings(cfg, profileSSO)
	prompter := promptutils.NewPrompt()
	generalManager := generalutils.NewGeneralUtilsManager()
	ctx := generalManager.HandleSignals()

	resolver := &provider.DefaultResolver{
		Profile:       cfg.Profile,
		DefaultRegion: cfg.DefaultRegion,
		MFASerial:     cfg.MFASerial,
		Store:         store,
		Prompter:      prompter,
		SSOStartURL:   ssoSettings.StartURL,
		SSORegion:     ssoSettings.Region,
		Exchange: sso.NewExchange(
			sso.NewTokenCache(fs, tokenDir),
			sso.WithNoBrowser(cfg.SSO.NoBrowser),
		),
	}

	rootCmd := root.NewRootCmd(root.RootDependencies{
		Resolver:       resolver,
		Selector:       prompter,
		Regions:        newRegionChecker(ctx, cfg.Profile),
		GeneralManager: generalManager,
		DefaultRegion:  cfg.DefaultRegion,
		SessionName:    cfg.SessionName,
		Config:         cfg,
		SSODefaults:    profileSSO,
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", root.WithHint(err))
		os.Exit(1)
	}
}

// resolveSSOSettings fills the SSO start URL and region from the shared
// config profile when rolectl's own config leaves them empty.
func resolveSSOSettings(cfg *config.Config, fromProfile sso.ProfileSettings) sso.ProfileSettings {
	settings := sso.ProfileSettings{StartURL: cfg.SSO.StartURL, Region: cfg.SSO.Region}
	if settings.StartURL == "" {
		settings.StartURL = fromProfile.StartURL
	}
	if settings.Region == "" {
		settings.Region = fromProfile.Region
	}
	return settings
}

func profileSSOSettings(fs afero.Fs, profile string) sso.ProfileSettings {
	if profile == "" {
		profile = "default"
	}
	path, err := sso.SharedConfigPath()
	if err != nil {
		return sso.ProfileSettings{}
	}
	settings, err := sso.LoadProfileSettings(fs, path, profile)
	if err != nil {
		log.Debugf("No SSO settings in profile %s: %v", profile, err)
		return sso.ProfileSettings{}
	}
	return *settings
}

func newRegionChecker(ctx context.Context, profile string) *generalutils.RegionChecker {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	opts = append(opts, awsconfig.WithRegion(provider.DefaultRegion))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Debugf("Region checks fall back to format only: %v", err)
		return generalutils.NewRegionChecker(nil)
	}
	return generalutils.NewRegionChecker(ec2.NewFromConfig(awsCfg))
}
