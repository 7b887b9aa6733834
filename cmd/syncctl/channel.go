package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/model"
)

func newChannelCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Derive and inspect push channel names",
	}
	cmd.AddCommand(newChannelDeriveCmd(d), newChannelListCmd(d), newChannelParseCmd(d))
	return cmd
}

func newChannelDeriveCmd(d deps) *cobra.Command {
	var family, resource, owner string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the channel name for a family, resource type and owner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := d.scheme.Derive(channel.Family(family), channel.ResourceType(resource), owner)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "channel family (coach or student)")
	cmd.Flags().StringVar(&resource, "resource", "", "resource type (task-updates, check-ins, assignments)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner identity")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newChannelListCmd(d deps) *cobra.Command {
	var role, user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every channel a session subscribes to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := model.ParseRole(role)
			if err != nil {
				return err
			}
			names, err := d.scheme.ForScope(model.Scope{UserID: user, Role: r})
			if err != nil {
				return err
			}
			for _, n := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "session role (coach or student)")
	cmd.Flags().StringVar(&user, "user", "", "session user id")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newChannelParseCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name>",
		Short: "Decode a channel name into family, resource type and owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := d.scheme.Parse(channel.Name(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "family=%s resource=%s owner=%s\n", desc.Family, desc.Resource, desc.Owner)
			return err
		},
	}
}
