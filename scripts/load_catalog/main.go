package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"

	"github.com/Luismorlan/cookmux/model"
	"github.com/Luismorlan/cookmux/utils"
	"github.com/Luismorlan/cookmux/utils/dotenv"
	. "github.com/Luismorlan/cookmux/utils/log"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// Loads the ingredient catalog from a CSV file of "name,measurement_unit"
// rows. Rows whose name already exists are skipped, so the script is safe to
// re-run against a populated database.
//
// Usage: go run scripts/load_catalog/main.go -file data/ingredients.csv

var filePath = flag.String("file", "ingredients.csv", "path to the ingredients csv file")

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	file, err := os.Open(*filePath)
	if err != nil {
		Log.Fatal("fail to open catalog file: ", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	inserted, skipped := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			Log.Fatal("fail to parse catalog file: ", err)
		}
		if len(record) != 2 {
			Log.Warn("skip malformed row: ", record)
			skipped++
			continue
		}

		ingredient := model.Ingredient{
			Id:              uuid.New().String(),
			Name:            record[0],
			MeasurementUnit: record[1],
		}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient)
		if result.Error != nil {
			Log.Fatal("fail to insert ingredient ", record[0], ": ", result.Error)
		}
		if result.RowsAffected == 0 {
			skipped++
			continue
		}
		inserted++
	}

	Log.Infof("catalog load done, %d inserted, %d skipped", inserted, skipped)
}
