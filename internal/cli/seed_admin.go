package cli

import (
	"context"
	"errors"
	"io"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/auth"
	"hospital_queue/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type adminParams struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

func seedAdminCmd() *cobra.Command {
	var params adminParams
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Создать учётную запись администратора",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			return seedAdmin(cmd.Context(), auth.NewUserStore(db), params, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&params.Email, "email", "", "email администратора")
	cmd.Flags().StringVar(&params.Password, "password", "", "пароль (не короче 6 символов)")
	cmd.Flags().StringVar(&params.Name, "name", "Администратор", "имя")
	cmd.Flags().StringVar(&params.Phone, "phone", "", "телефон")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// seedAdmin создаёт администратора. Если email уже занят, это не ошибка.
func seedAdmin(ctx context.Context, users *auth.UserStore, params adminParams, out io.Writer) error {
	if len(params.Password) < 6 {
		return errors.New("пароль должен быть не короче 6 символов")
	}

	user := models.User{
		Name:  params.Name,
		Email: params.Email,
		Phone: params.Phone,
		Role:  models.RoleAdmin,
	}
	err := users.Create(ctx, &user, params.Password)
	if apperrors.CodeOf(err) == "EMAIL_EXISTS" {
		color.New(color.FgYellow).Fprintf(out, "EXISTS  %s\n", params.Email)
		return nil
	}
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "CREATE  %s (id %d)\n", params.Email, user.ID)
	return nil
}
