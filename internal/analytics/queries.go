package analytics

// Age bands shared by the aggregate queries. BETWEEN is inclusive; anything
// outside 18..55 (including NULL) falls into 55+.
const ageBand = `CASE
			WHEN age BETWEEN 18 AND 25 THEN '18-25'
			WHEN age BETWEEN 26 AND 35 THEN '26-35'
			WHEN age BETWEEN 36 AND 45 THEN '36-45'
			WHEN age BETWEEN 46 AND 55 THEN '46-55'
			ELSE '55+'
		END`

const femaleOver30Top10 = `
SELECT customer_id, age, product_category, total_amount
FROM {{.Table}}
WHERE gender = 'Female' AND age > 30
ORDER BY total_amount DESC
LIMIT 10`

const electronicsOver1000 = `
SELECT date, customer_id, age, gender, quantity, total_amount
FROM {{.Table}}
WHERE product_category = 'Electronics' AND total_amount > 1000
ORDER BY total_amount DESC`

const q4Sales2023 = `
SELECT date, product_category, gender, total_amount
FROM {{.Table}}
WHERE date BETWEEN '2023-10-01' AND '2023-12-31'
ORDER BY date`

const ageGenderSales = `
SELECT
	age_group,
	gender,
	COUNT(*) AS transaction_count,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_transaction_value,
	SUM(quantity) AS total_items
FROM (
	SELECT ` + ageBand + ` AS age_group, gender, total_amount, quantity
	FROM {{.Table}}
) AS banded
GROUP BY age_group, gender
ORDER BY age_group, gender`

const categoryGenderSales = `
SELECT
	product_category,
	gender,
	COUNT(*) AS transaction_count,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_sale,
	SUM(quantity) AS total_quantity
FROM {{.Table}}
GROUP BY product_category, gender
ORDER BY product_category, gender`

const monthlySales = `
SELECT
	month,
	gender,
	COUNT(*) AS transactions,
	SUM(total_amount) AS monthly_sales,
	AVG(total_amount) AS avg_transaction,
	SUM(quantity) AS items_sold
FROM (
	SELECT {{month "date"}} AS month, gender, total_amount, quantity
	FROM {{.Table}}
) AS monthly
GROUP BY month, gender
ORDER BY month, gender`

// category_code is NULL for categories outside the three known ones.
const correlationData = `
SELECT
	age,
	CASE WHEN gender = 'Male' THEN 1 ELSE 0 END AS is_male,
	quantity,
	price_per_unit,
	total_amount,
	CASE
		WHEN product_category = 'Electronics' THEN 1
		WHEN product_category = 'Clothing' THEN 2
		WHEN product_category = 'Beauty' THEN 3
	END AS category_code
FROM {{.Table}}`

// revenue_per_customer divides two integer aggregates when total_amount is an
// INTEGER column, so SQLite truncates it before rounding.
const ageGroupComparison = `
WITH age_group_stats AS (
	SELECT
		age_group,
		age_order,
		COUNT(DISTINCT customer_id) AS unique_customers,
		COUNT(*) AS total_transactions,
		SUM(total_amount) AS total_revenue,
		AVG(total_amount) AS avg_transaction_value,
		SUM(quantity) AS total_items,
		AVG(quantity) AS avg_items_per_transaction,
		SUM(total_amount) / COUNT(DISTINCT customer_id) AS revenue_per_customer
	FROM (
		SELECT
			CASE
				WHEN age BETWEEN 18 AND 25 THEN '18-25 (Youth)'
				WHEN age BETWEEN 26 AND 35 THEN '26-35 (Young adults)'
				WHEN age BETWEEN 36 AND 45 THEN '36-45 (Middle age)'
				WHEN age BETWEEN 46 AND 55 THEN '46-55 (Mature)'
				ELSE '55+ (Senior)'
			END AS age_group,
			CASE
				WHEN age BETWEEN 18 AND 25 THEN 1
				WHEN age BETWEEN 26 AND 35 THEN 2
				WHEN age BETWEEN 36 AND 45 THEN 3
				WHEN age BETWEEN 46 AND 55 THEN 4
				ELSE 5
			END AS age_order,
			customer_id, total_amount, quantity
		FROM {{.Table}}
	) AS banded
	GROUP BY age_group, age_order
)
SELECT
	age_group,
	unique_customers,
	total_transactions,
	{{round "total_revenue" 2}} AS total_revenue,
	{{round "avg_transaction_value" 2}} AS avg_transaction,
	total_items,
	{{round "avg_items_per_transaction" 2}} AS avg_items,
	{{round "revenue_per_customer" 2}} AS revenue_per_customer,
	{{round "100.0 * total_transactions / SUM(total_transactions) OVER ()" 2}} AS transactions_percentage
FROM age_group_stats
ORDER BY age_order`

const categoryByAge = `
SELECT
	age_group,
	product_category,
	COUNT(*) AS purchases,
	SUM(total_amount) AS category_revenue,
	AVG(total_amount) AS avg_spent,
	SUM(quantity) AS items_bought,
	{{round "100.0 * COUNT(*) / SUM(COUNT(*)) OVER (PARTITION BY age_group)" 2}} AS category_percentage
FROM (
	SELECT ` + ageBand + ` AS age_group, product_category, total_amount, quantity
	FROM {{.Table}}
) AS banded
GROUP BY age_group, product_category
ORDER BY age_group, category_revenue DESC, product_category`

const seasonality = `
SELECT
	month_num,
	CASE month_num
		WHEN '01' THEN 'January'
		WHEN '02' THEN 'February'
		WHEN '03' THEN 'March'
		WHEN '04' THEN 'April'
		WHEN '05' THEN 'May'
		WHEN '06' THEN 'June'
		WHEN '07' THEN 'July'
		WHEN '08' THEN 'August'
		WHEN '09' THEN 'September'
		WHEN '10' THEN 'October'
		WHEN '11' THEN 'November'
		WHEN '12' THEN 'December'
	END AS month_name,
	COUNT(*) AS transactions,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_sale,
	SUM(quantity) AS total_items,
	COUNT(DISTINCT customer_id) AS unique_customers
FROM (
	SELECT {{monthnum "date"}} AS month_num, customer_id, total_amount, quantity
	FROM {{.Table}}
) AS months
GROUP BY month_num
ORDER BY month_num`
