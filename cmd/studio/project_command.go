// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dublab/studio/internal/adminclient"
	"github.com/dublab/studio/internal/platform/config"
)

type pushOptions struct {
	file   string
	cover  string
	banner string
	edit   string
}

func newProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create and edit projects through a running API",
	}

	opts := &pushOptions{}
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Create a project, or edit one with --edit, from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			client, err := adminclient.New(adminclient.Config{BaseURL: cfg.APIURL, Token: cfg.APIToken})
			if err != nil {
				return err
			}
			return pushProject(cmd, client, opts)
		},
	}

	pushCmd.Flags().StringVarP(&opts.file, "file", "f", "", "Project description (YAML)")
	pushCmd.Flags().StringVar(&opts.cover, "cover", "", "Cover image to upload")
	pushCmd.Flags().StringVar(&opts.banner, "banner", "", "Banner image to upload")
	pushCmd.Flags().StringVar(&opts.edit, "edit", "", "Slug of the project to edit")
	_ = pushCmd.MarkFlagRequired("file")

	projectCmd.AddCommand(pushCmd)
	return projectCmd
}

func pushProject(cmd *cobra.Command, client *adminclient.Client, opts *pushOptions) error {
	ctx := cmd.Context()

	described, err := readProjectFile(opts.file)
	if err != nil {
		return err
	}

	options, err := client.FormOptions(ctx)
	if err != nil {
		return fmt.Errorf("load form options: %w", err)
	}

	form := adminclient.NewForm(nil, options)
	if opts.edit != "" {
		existing, err := client.Project(ctx, opts.edit)
		if err != nil {
			return fmt.Errorf("load project %s: %w", opts.edit, err)
		}
		form = adminclient.NewForm(existing, options)
	}
	described.applyTo(form)

	var closers []io.Closer
	defer func() {
		for _, closer := range closers {
			closer.Close()
		}
	}()
	for _, image := range []struct {
		path   string
		target **adminclient.File
	}{
		{opts.cover, &form.CoverFile},
		{opts.banner, &form.BannerFile},
	} {
		if image.path == "" {
			continue
		}
		opened, err := os.Open(image.path)
		if err != nil {
			return err
		}
		closers = append(closers, opened)
		*image.target = &adminclient.File{Name: filepath.Base(image.path), Body: opened}
	}

	saved, err := adminclient.NewSubmitter(client).Submit(ctx, form)
	if err != nil {
		var formErrs *adminclient.FormErrors
		if errors.As(err, &formErrs) {
			printFormErrors(cmd.ErrOrStderr(), formErrs)
			return errors.New("project was not saved")
		}
		return err
	}

	verb := "Created"
	if opts.edit != "" {
		verb = "Updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s project %d (%s)\n", verb, saved.ID, saved.Slug)
	return nil
}

func readProjectFile(path string) (*projectFile, error) {
	opened, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer opened.Close()
	return decodeProjectFile(opened)
}

func printFormErrors(out io.Writer, errs *adminclient.FormErrors) {
	if errs.General != "" {
		fmt.Fprintln(out, errs.General)
	}

	fields := make([]string, 0, len(errs.Fields))
	for field := range errs.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, message := range errs.Fields[field] {
			fmt.Fprintf(out, "  %s: %s\n", field, message)
		}
	}
}
